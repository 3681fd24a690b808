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

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sightlib/sight/internal/selfcheck"
)

func newCheckCmd(a *app) *cobra.Command {
	cfg := selfcheck.DefaultConfig()
	var format string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify lane semantics on this machine",
		Long: `Runs the conformance self-check: both integer multiply strategies and
both integer min/max paths must agree, float arithmetic and comparisons must
match a reference implementation on finite data, and the documented edge
cases (rounding, NaN masks, truncation) must hold.

Exits with status 1 on any mismatch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Debug("starting self-check", "samples", cfg.Samples, "seed", cfg.Seed, "workers", cfg.Workers)
			report, err := selfcheck.Run(cmd.Context(), cfg, a.logger)
			// A cancelled or misconfigured run has no verdict to print.
			if err == nil || errors.Is(err, selfcheck.ErrMismatch) {
				var werr error
				switch format {
				case "text":
					werr = writeReportText(cmd.OutOrStdout(), report)
				case "yaml":
					werr = writeYAML(cmd.OutOrStdout(), report)
				default:
					werr = errUnknownFormat(format)
				}
				if werr != nil {
					return werr
				}
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&cfg.Samples, "samples", "n", cfg.Samples, "Random vector pairs per check")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Number of worker goroutines")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")
	return cmd
}

func writeReportText(w io.Writer, r selfcheck.Report) error {
	status := "PASS"
	if !r.OK() {
		status = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "%s level=%s checks=%d samples=%d workers=%d elapsed=%s\n",
		status, r.Level, len(r.Checks), r.Samples, r.Workers, r.Elapsed); err != nil {
		return err
	}
	for _, f := range r.Failures {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", f.Check, f.Detail); err != nil {
			return err
		}
	}
	return nil
}
