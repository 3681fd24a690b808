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
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/viterin/vek/vek32"
	"golang.org/x/sys/cpu"
	"gopkg.in/yaml.v3"

	"github.com/sightlib/sight/simd"
)

// hostInfo is what `sightinfo info` prints.
type hostInfo struct {
	GOOS   string `yaml:"goos"`
	GOARCH string `yaml:"goarch"`
	NumCPU int    `yaml:"num_cpu"`

	Level       string          `yaml:"level"`
	Width       int             `yaml:"width"`
	HostSupport map[string]bool `yaml:"host_support"`

	CPU    cpuInfo    `yaml:"cpu"`
	Oracle oracleInfo `yaml:"oracle"`
}

type cpuInfo struct {
	Brand         string          `yaml:"brand"`
	Vendor        string          `yaml:"vendor"`
	PhysicalCores int             `yaml:"physical_cores"`
	LogicalCores  int             `yaml:"logical_cores"`
	Features      []string        `yaml:"features"`
	SysCPU        map[string]bool `yaml:"x_sys_cpu"`
}

type oracleInfo struct {
	Accelerated bool     `yaml:"accelerated"`
	Features    []string `yaml:"features,omitempty"`
}

// vectorFeatures are the cpuid features relevant to 128-bit lane semantics.
var vectorFeatures = []cpuid.FeatureID{
	cpuid.SSE, cpuid.SSE2, cpuid.SSE3, cpuid.SSSE3, cpuid.SSE4, cpuid.SSE42,
	cpuid.AVX, cpuid.AVX2, cpuid.FMA3, cpuid.ASIMD,
}

func collectHostInfo() hostInfo {
	levels := []simd.Level{simd.LevelSSE2, simd.LevelSSE41}
	oracle := vek32.Info()

	return hostInfo{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
		Level:  simd.CurrentName(),
		Width:  simd.CurrentWidth(),
		HostSupport: lo.Associate(levels, func(l simd.Level) (string, bool) {
			return l.String(), simd.HostSupports(l)
		}),
		CPU: cpuInfo{
			Brand:         cpuid.CPU.BrandName,
			Vendor:        cpuid.CPU.VendorString,
			PhysicalCores: cpuid.CPU.PhysicalCores,
			LogicalCores:  cpuid.CPU.LogicalCores,
			Features: lo.FilterMap(vectorFeatures, func(f cpuid.FeatureID, _ int) (string, bool) {
				return f.String(), cpuid.CPU.Supports(f)
			}),
			SysCPU: sysCPUFeatures(),
		},
		Oracle: oracleInfo{
			Accelerated: oracle.Acceleration,
			Features:    oracle.CPUFeatures,
		},
	}
}

// sysCPUFeatures reports the golang.org/x/sys/cpu flags for this GOARCH.
func sysCPUFeatures() map[string]bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return map[string]bool{
			"sse2":  cpu.X86.HasSSE2,
			"sse3":  cpu.X86.HasSSE3,
			"ssse3": cpu.X86.HasSSSE3,
			"sse41": cpu.X86.HasSSE41,
			"sse42": cpu.X86.HasSSE42,
			"avx":   cpu.X86.HasAVX,
			"avx2":  cpu.X86.HasAVX2,
			"fma":   cpu.X86.HasFMA,
		}
	case "arm64":
		return map[string]bool{
			"asimd": cpu.ARM64.HasASIMD,
			"fp":    cpu.ARM64.HasFP,
		}
	default:
		return map[string]bool{}
	}
}

func newInfoCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the compiled level and host CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := collectHostInfo()
			a.logger.Debug("collected host info", "level", info.Level, "goarch", info.GOARCH, "brand", info.CPU.Brand)
			switch format {
			case "text":
				return writeInfoText(cmd.OutOrStdout(), info)
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), info)
			default:
				return errUnknownFormat(format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")
	return cmd
}

func writeInfoText(w io.Writer, info hostInfo) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("GOOS: %s\n", info.GOOS)
	p("GOARCH: %s\n", info.GOARCH)
	p("NumCPU: %d\n", info.NumCPU)
	p("\n")
	p("sight level: %s\n", info.Level)
	p("sight width: %d bytes\n", info.Width)
	for _, name := range sortedKeys(info.HostSupport) {
		p("  host supports %-7s %v\n", name+":", info.HostSupport[name])
	}
	p("\n")
	p("CPU: %s (%s)\n", lo.Ternary(info.CPU.Brand == "", "unknown", info.CPU.Brand), info.CPU.Vendor)
	p("  cores: %d physical, %d logical\n", info.CPU.PhysicalCores, info.CPU.LogicalCores)
	p("  cpuid features: %s\n", lo.Ternary(len(info.CPU.Features) == 0, "none", strings.Join(info.CPU.Features, " ")))
	p("=== golang.org/x/sys/cpu ===\n")
	for _, name := range sortedKeys(info.CPU.SysCPU) {
		p("  %-6s %v\n", name+":", info.CPU.SysCPU[name])
	}
	p("\n")
	p("vek32 accelerated: %v\n", info.Oracle.Accelerated)
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
