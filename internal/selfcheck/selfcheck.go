// Copyright 2025 sight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package selfcheck verifies on the running machine that the simd package
// produces the lane results it documents. It backs `sightinfo check`.
package selfcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/sightlib/sight/simd"
)

var (
	// ErrMismatch is returned by Run when at least one check failed.
	ErrMismatch = errors.New("selfcheck: lane mismatch")

	// ErrInvalidConfig is returned for a non-positive sample or worker count.
	ErrInvalidConfig = errors.New("selfcheck: invalid config")
)

// maxFailuresPerCheck bounds how many failures one worker records per check.
const maxFailuresPerCheck = 8

// Config controls a self-check run.
type Config struct {
	// Samples is the number of random vector pairs per check.
	Samples int
	// Seed makes runs reproducible.
	Seed uint64
	// Workers is the number of goroutines the samples are split across.
	Workers int
}

// DefaultConfig returns the configuration used by `sightinfo check`.
func DefaultConfig() Config {
	return Config{Samples: 100_000, Seed: 1, Workers: 4}
}

// Failure describes one mismatching sample.
type Failure struct {
	Check  string `yaml:"check"`
	Detail string `yaml:"detail"`
}

// Report summarizes a run.
type Report struct {
	Level    string        `yaml:"level"`
	Checks   []string      `yaml:"checks"`
	Samples  int           `yaml:"samples"`
	Workers  int           `yaml:"workers"`
	Elapsed  time.Duration `yaml:"elapsed"`
	Failures []Failure     `yaml:"failures,omitempty"`
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// check runs n samples drawn from rng and reports failures through fail.
type check struct {
	name string
	run  func(ctx context.Context, rng *rand.Rand, n int, fail func(format string, args ...any)) error
}

// edgeCheck runs once per Run, before the sampled checks are split across
// workers.
var edgeCheck = check{"edges", checkEdges}

// sampledChecks run on every worker over that worker's share of samples.
func sampledChecks() []check {
	return []check{
		{"int-mul", checkIntMul},
		{"int-minmax", checkIntMinMax},
		{"float-arith", checkFloatArith},
		{"float-compare", checkFloatCompare},
		{"convert", checkConvert},
	}
}

// collector returns a fail function for check name that appends to dst,
// keeping at most maxFailuresPerCheck entries, and a counter of all calls.
func collector(name string, dst *[]Failure) (fail func(string, ...any), count func() int) {
	n := 0
	fail = func(format string, args ...any) {
		n++
		if n <= maxFailuresPerCheck {
			*dst = append(*dst, Failure{Check: name, Detail: fmt.Sprintf(format, args...)})
		}
	}
	return fail, func() int { return n }
}

// Run executes every check and returns a report. The error wraps
// ErrMismatch when the report holds failures. When ctx is cancelled the
// run stops early and Run returns ctx.Err() with a partial report whose
// Failures cover only the work done; it must not be read as a pass.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (Report, error) {
	if cfg.Samples <= 0 || cfg.Workers <= 0 {
		return Report{}, fmt.Errorf("%w: samples=%d workers=%d", ErrInvalidConfig, cfg.Samples, cfg.Workers)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sampled := sampledChecks()
	report := Report{
		Level:   simd.CurrentName(),
		Checks:  append([]string{edgeCheck.name}, lo.Map(sampled, func(c check, _ int) string { return c.name })...),
		Samples: cfg.Samples,
		Workers: cfg.Workers,
	}
	start := time.Now()

	var edgeFailures []Failure
	fail, count := collector(edgeCheck.name, &edgeFailures)
	if err := edgeCheck.run(ctx, nil, 0, fail); err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}
	logger.DebugContext(ctx, "check finished", "check", edgeCheck.name, "failures", count())

	perWorker := make([][]Failure, cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		n := cfg.Samples / cfg.Workers
		if w < cfg.Samples%cfg.Workers {
			n++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(w)))
			for _, c := range sampled {
				fail, count := collector(c.name, &perWorker[w])
				if err := c.run(gctx, rng, n, fail); err != nil {
					return err
				}
				logger.DebugContext(gctx, "check finished", "check", c.name, "worker", w, "samples", n, "failures", count())
			}
			return nil
		})
	}
	err := g.Wait()
	report.Failures = append(edgeFailures, lo.Flatten(perWorker)...)
	report.Elapsed = time.Since(start)
	if err != nil {
		logger.WarnContext(ctx, "self-check stopped", "error", err, "elapsed", report.Elapsed)
		return report, err
	}
	if !report.OK() {
		logger.WarnContext(ctx, "self-check failed", "failures", len(report.Failures))
		return report, fmt.Errorf("%w: %d failures", ErrMismatch, len(report.Failures))
	}
	logger.InfoContext(ctx, "self-check passed", "checks", len(report.Checks), "samples", cfg.Samples, "elapsed", report.Elapsed)
	return report, nil
}

// cancelEvery is how many samples a check processes between context polls.
const cancelEvery = 1024

func cancelled(ctx context.Context, i int) error {
	if i%cancelEvery != 0 {
		return nil
	}
	return ctx.Err()
}
