package selfcheck

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightlib/sight/simd"
)

func TestRunPasses(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	report, err := Run(context.Background(), Config{Samples: 2000, Seed: 7, Workers: 3}, logger)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, simd.CurrentName(), report.Level)
	assert.Equal(t, []string{"edges", "int-mul", "int-minmax", "float-arith", "float-compare", "convert"}, report.Checks)
	assert.Equal(t, 2000, report.Samples)
	assert.Equal(t, 3, report.Workers)
	assert.Contains(t, buf.String(), "self-check passed")
	assert.Contains(t, buf.String(), "check=float-compare")
}

func TestRunNilLogger(t *testing.T) {
	report, err := Run(context.Background(), Config{Samples: 10, Seed: 1, Workers: 1}, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Failures)
}

func TestRunMoreWorkersThanSamples(t *testing.T) {
	_, err := Run(context.Background(), Config{Samples: 3, Seed: 1, Workers: 8}, nil)
	require.NoError(t, err)
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero samples", Config{Samples: 0, Workers: 1}},
		{"negative samples", Config{Samples: -5, Workers: 1}},
		{"zero workers", Config{Samples: 10, Workers: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.cfg, nil)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, Config{Samples: 10_000, Seed: 1, Workers: 2}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrMismatch))
	assert.Positive(t, report.Elapsed, "elapsed is recorded on the cancelled path")
}

func TestRunEdgesOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run(context.Background(), Config{Samples: 64, Seed: 3, Workers: 6}, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "check=edges"))
	assert.Equal(t, 6, strings.Count(buf.String(), "check=int-mul"))
}

func TestCollector(t *testing.T) {
	var failures []Failure
	fail, count := collector("edges", &failures)
	for i := range maxFailuresPerCheck + 3 {
		fail("case %d", i)
	}
	assert.Equal(t, maxFailuresPerCheck+3, count())
	require.Len(t, failures, maxFailuresPerCheck)
	assert.Equal(t, Failure{Check: "edges", Detail: "case 0"}, failures[0])
}

func TestFailureCollection(t *testing.T) {
	var got []string
	fail := func(format string, args ...any) { got = append(got, format) }

	err := checkEdges(context.Background(), nil, 0, fail)
	require.NoError(t, err)
	assert.Empty(t, got, "edge cases must hold on every build")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.Samples)
	assert.Positive(t, cfg.Workers)
}
