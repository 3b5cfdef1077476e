// Copyright 2025 walteh LLC
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

// Package stats accumulates per-root and global harvest counters.
// Reporting is informational only and never influences copy decisions.
package stats

import "fmt"

// 📊 RootStats holds the counters for one root folder.
type RootStats struct {
	Found        int // recent, pattern-matching files found
	Copied       int // files copied (unique and duplicate)
	UniqueCopied int // files copied into the output directory
	SkippedDirs  int // backup directories excluded by the marker
}

// 🧮 Accumulator collects one RootStats per root, in processing order,
// plus derived global totals. Records are created on first use and kept
// until report time.
type Accumulator struct {
	order []string
	roots map[string]*RootStats
}

// 🏭 NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{roots: make(map[string]*RootStats)}
}

// Root returns the record for a root path, creating it on first use.
func (a *Accumulator) Root(path string) *RootStats {
	if rs, ok := a.roots[path]; ok {
		return rs
	}
	rs := &RootStats{}
	a.roots[path] = rs
	a.order = append(a.order, path)
	return rs
}

// Roots returns the root paths in processing order.
func (a *Accumulator) Roots() []string {
	return a.order
}

// Totals sums all per-root records into a global record.
func (a *Accumulator) Totals() RootStats {
	var total RootStats
	for _, rs := range a.roots {
		total.Found += rs.Found
		total.Copied += rs.Copied
		total.UniqueCopied += rs.UniqueCopied
		total.SkippedDirs += rs.SkippedDirs
	}
	return total
}

// 📝 Report renders the per-root breakdown followed by the global summary,
// one plain line per entry, ready for the run log.
func (a *Accumulator) Report(outputDir, duplicatesDir string) []string {
	lines := []string{"---- per-root breakdown ----"}
	for _, root := range a.order {
		rs := a.roots[root]
		lines = append(lines,
			fmt.Sprintf("%s: found=%d copied=%d unique=%d skipped_dirs=%d",
				root, rs.Found, rs.Copied, rs.UniqueCopied, rs.SkippedDirs))
	}

	total := a.Totals()
	lines = append(lines,
		"---- summary ----",
		fmt.Sprintf("files found: %d", total.Found),
		fmt.Sprintf("files copied: %d", total.Copied),
		fmt.Sprintf("unique files copied: %d", total.UniqueCopied),
		fmt.Sprintf("directories skipped: %d", total.SkippedDirs),
		fmt.Sprintf("output directory: %s", outputDir),
		fmt.Sprintf("duplicates directory: %s", duplicatesDir),
	)
	return lines
}
