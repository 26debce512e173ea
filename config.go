package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Optional .env file with CRITPLOT_* defaults, real environment wins
	godotenv.Load()
}

func StringEnv(key string, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func IntEnv(key string, def int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
