package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringEnv(t *testing.T) {
	t.Setenv("CRITPLOT_TEST_STRING", "value")
	require.Equal(t, "value", StringEnv("CRITPLOT_TEST_STRING", "default"))
	require.Equal(t, "default", StringEnv("CRITPLOT_TEST_MISSING", "default"))
}

func TestIntEnv(t *testing.T) {
	t.Setenv("CRITPLOT_TEST_INT", "42")
	require.Equal(t, 42, IntEnv("CRITPLOT_TEST_INT", 7))
	require.Equal(t, 7, IntEnv("CRITPLOT_TEST_INT_MISSING", 7))

	t.Setenv("CRITPLOT_TEST_INT", "not-a-number")
	require.Equal(t, 7, IntEnv("CRITPLOT_TEST_INT", 7))
}
