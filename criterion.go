package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// BenchmarkInfo is everything we need to know about a single criterion benchmark.
type BenchmarkInfo struct {
	Benchmark Benchmark
	Estimates Estimates
}

// Benchmark mirrors criterion's benchmark.json metadata.
type Benchmark struct {
	GroupID    string      `json:"group_id"`
	ValueStr   string      `json:"value_str"`
	Throughput *Throughput `json:"throughput"`
}

// Value decodes the benchmark value as an integer. Criterion allows any string
// here, but we always record the input size in this field and the plot needs a
// number for axis construction anyway.
func (b *Benchmark) Value() (int, error) {
	value, err := strconv.Atoi(b.ValueStr)
	if err != nil {
		return 0, fmt.Errorf("expected an integer criterion benchmark value, got %q: %w", b.ValueStr, err)
	}
	return value, nil
}

type ThroughputType int

const (
	ThroughputNone ThroughputType = iota
	ThroughputBytes
	ThroughputBytesDecimal
	ThroughputElements
)

func (t ThroughputType) String() string {
	switch t {
	case ThroughputNone:
		return "none"
	case ThroughputBytes:
		return "bytes"
	case ThroughputBytesDecimal:
		return "bytes-decimal"
	case ThroughputElements:
		return "elements"
	}
	return fmt.Sprintf("unknown(%v)", int(t))
}

// Throughput is criterion's throughput configuration: how much work one
// iteration of the benchmarked code performs.
type Throughput struct {
	Type  ThroughputType
	Count uint64
}

// UnmarshalJSON decodes criterion's externally tagged encoding, e.g. {"Elements": 1000}.
func (t *Throughput) UnmarshalJSON(data []byte) error {
	var raw map[string]uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("expected a single throughput variant, got %v", len(raw))
	}
	for variant, count := range raw {
		switch variant {
		case "Bytes":
			t.Type = ThroughputBytes
		case "BytesDecimal":
			t.Type = ThroughputBytesDecimal
		case "Elements":
			t.Type = ThroughputElements
		default:
			return fmt.Errorf("unknown criterion throughput variant %q", variant)
		}
		t.Count = count
	}
	return nil
}

// Estimates mirrors the part of criterion's estimates.json that we plot.
type Estimates struct {
	Median Estimate `json:"median"`
}

type Estimate struct {
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	PointEstimate      float64            `json:"point_estimate"`
	StandardError      float64            `json:"standard_error"`
}

type ConfidenceInterval struct {
	ConfidenceLevel float64 `json:"confidence_level"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

// benchmarkFiles accumulates the data files of one benchmark directory during the walk.
type benchmarkFiles struct {
	benchmark *Benchmark
	estimates *Estimates
}

// GuessGroupID recovers a benchmark group id from its directory name. Criterion
// flattens the slash-separated group hierarchy into directory names by replacing
// '/' with '_'.
func GuessGroupID(dir string) string {
	return strings.ReplaceAll(dir, "_", "/")
}

// ReadAll loads raw benchmark data from the criterion output directory under
// root, keeping only groups whose name matches filter.
//
// The criterion layout is <group>/<value>/new/{benchmark,estimates}.json with
// HTML reports interleaved at every level. Only the newest dataset is read.
func ReadAll(root string, filter *regexp.Regexp) ([]BenchmarkInfo, error) {
	criterionPath := filepath.Join(root, "target", "criterion")
	if _, err := os.Stat(criterionPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no criterion data found at %v, have you run the benchmark yet?", criterionPath)
		}
		return nil, err
	}

	benchmarks := make(map[string]*benchmarkFiles)
	err := filepath.WalkDir(criterionPath, func(walkPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(criterionPath, walkPath)
		if err != nil {
			return err
		}
		if relative == "." {
			return nil
		}
		parts := strings.Split(relative, string(filepath.Separator))
		if entry.IsDir() {
			switch len(parts) {
			case 1:
				// Benchmark group directory, reject the HTML report
				if parts[0] == "report" {
					return fs.SkipDir
				}
				if !filter.MatchString(GuessGroupID(parts[0])) {
					return fs.SkipDir
				}
			case 2:
				// Input size directory, reject the HTML report
				if parts[1] == "report" {
					return fs.SkipDir
				}
			case 3:
				// Only accept the newest dataset
				if parts[2] != "new" {
					return fs.SkipDir
				}
			}
			return nil
		}
		if len(parts) != 4 {
			return nil
		}
		stem, isJson := strings.CutSuffix(parts[3], ".json")
		if !isJson {
			return fmt.Errorf("criterion data files should all be JSON, got %v", relative)
		}
		if stem != "benchmark" && stem != "estimates" {
			return nil
		}

		data, err := os.ReadFile(walkPath)
		if err != nil {
			return fmt.Errorf("failed to read data file %v: %w", relative, err)
		}
		dir := filepath.Dir(relative)
		files := benchmarks[dir]
		if files == nil {
			files = &benchmarkFiles{}
			benchmarks[dir] = files
		}
		switch stem {
		case "benchmark":
			benchmark := &Benchmark{}
			if err := json.Unmarshal(data, benchmark); err != nil {
				return fmt.Errorf("failed to decode criterion benchmark metadata %v: %w", relative, err)
			}
			if !filter.MatchString(benchmark.GroupID) {
				return fmt.Errorf("benchmark group id %v should match the trace regex if its directory name does", benchmark.GroupID)
			}
			files.benchmark = benchmark
		case "estimates":
			estimates := &Estimates{}
			if err := json.Unmarshal(data, estimates); err != nil {
				return fmt.Errorf("failed to decode criterion benchmark estimates %v: %w", relative, err)
			}
			files.estimates = estimates
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]BenchmarkInfo, 0, len(benchmarks))
	for dir, files := range benchmarks {
		if files.benchmark == nil || files.estimates == nil {
			return nil, fmt.Errorf("did not get all expected data files for benchmark %v", dir)
		}
		groupDir := strings.Split(dir, string(filepath.Separator))[0]
		if guess := GuessGroupID(groupDir); guess != files.benchmark.GroupID {
			return nil, fmt.Errorf(
				"benchmark group directory %v does not follow the expected naming convention for group %v",
				groupDir,
				files.benchmark.GroupID,
			)
		}
		result = append(result, BenchmarkInfo{Benchmark: *files.benchmark, Estimates: *files.estimates})
	}
	return result, nil
}
