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

package operation

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/csvharvest/pkg/archive"
	"github.com/walteh/csvharvest/pkg/config"
	"github.com/walteh/csvharvest/pkg/log"
	"github.com/walteh/csvharvest/pkg/scan"
	"github.com/walteh/csvharvest/pkg/stats"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the harvest operation.
type Options struct {
	// Config is the run configuration.
	Config *config.Config
	// Logger is the run logger.
	Logger *log.Logger
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// 🎮 Harvest is the single-pass pipeline: index existing files, discover
// backup directories per root, classify and copy recent files, report.
// Execution is strictly sequential.
type Harvest struct {
	cfg     *config.Config
	logger  *log.Logger
	scanner *scan.Scanner
	copier  *archive.Copier
	index   *archive.Index
	acc     *stats.Accumulator
	now     func() time.Time

	processed    int
	copyFailures int
}

// 🏭 New creates a harvest operation with the given options.
func New(opts Options) (*Harvest, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cfg := opts.Config
	return &Harvest{
		cfg:     cfg,
		logger:  opts.Logger,
		scanner: scan.New(cfg.BackupDirName, cfg.ExcludeMarker, cfg.FilePattern),
		copier:  archive.NewCopier(cfg.OutputDir, cfg.DuplicatesDir()),
		index:   archive.NewIndex(),
		acc:     stats.NewAccumulator(),
		now:     now,
	}, nil
}

// 🏃 Execute runs the pipeline. Individual copy failures are logged and
// swallowed; only a failure to create the destination layout is fatal.
func (h *Harvest) Execute(ctx context.Context) error {
	cutoff := h.cfg.Cutoff(h.now())
	h.logger.Header("harvesting CSV backups")
	h.logger.Infof("copying files modified on or after %s", cutoff.Format("2006-01-02"))

	if err := h.copier.EnsureLayout(); err != nil {
		return errors.Errorf("preparing destination: %w", err)
	}
	h.index.Seed(ctx, h.copier.OutputDir())

	for _, root := range h.cfg.Roots {
		h.processRoot(ctx, root, cutoff)
	}

	h.report()
	return nil
}

// 🚶 processRoot handles one root folder. A missing root records zero
// statistics and is not fatal.
func (h *Harvest) processRoot(ctx context.Context, root string, cutoff time.Time) {
	rs := h.acc.Root(root)

	if _, err := os.Stat(root); err != nil {
		h.logger.Warningf("root folder %s not found, skipping", root)
		zerolog.Ctx(ctx).Debug().Str("root", root).Err(err).Msg("root missing")
		return
	}

	h.logger.StartRoot(root)
	disc := h.scanner.DiscoverBackupDirs(ctx, root)
	rs.SkippedDirs = disc.Excluded

	for _, dir := range disc.Dirs {
		h.processDir(ctx, rs, dir, cutoff)
	}
}

// 📁 processDir classifies and copies the recent files of one backup dir.
func (h *Harvest) processDir(ctx context.Context, rs *stats.RootStats, dir string, cutoff time.Time) {
	for _, file := range h.scanner.ListRecentFiles(ctx, dir, cutoff) {
		rs.Found++
		h.processFile(ctx, rs, file)
		h.processed++
		if h.processed%h.cfg.ProgressEvery == 0 {
			h.logger.Progress(h.processed)
		}
	}
}

// 📄 processFile copies one file into the output or duplicates directory.
// The index tracks only the output directory: a duplicate copy never adds
// its key, and a failed unique copy leaves the key unclaimed.
func (h *Harvest) processFile(ctx context.Context, rs *stats.RootStats, src string) {
	name := filepath.Base(src)

	if h.index.Has(name) {
		dst, err := h.copier.CopyDuplicate(ctx, src)
		if err != nil {
			h.copyFailures++
			h.logger.Errorf("copying %s: %v", name, err)
			return
		}
		rs.Copied++
		h.logger.LogFileOperation(log.FileOperation{
			Name:        name,
			Source:      src,
			Destination: dst,
			Duplicate:   true,
		})
		return
	}

	dst, err := h.copier.CopyUnique(ctx, src)
	if err != nil {
		h.copyFailures++
		h.logger.Errorf("copying %s: %v", name, err)
		return
	}
	h.index.Add(name)
	rs.Copied++
	rs.UniqueCopied++
	h.logger.LogFileOperation(log.FileOperation{
		Name:        name,
		Source:      src,
		Destination: dst,
	})
}

// 📊 report emits the per-root breakdown and the global summary.
func (h *Harvest) report() {
	outputDir := absOrRaw(h.copier.OutputDir())
	duplicatesDir := absOrRaw(h.copier.DuplicatesDir())
	for _, line := range h.acc.Report(outputDir, duplicatesDir) {
		h.logger.Info(line)
	}
	h.logger.Success("harvest complete")
}

// Stats returns the accumulated statistics.
func (h *Harvest) Stats() *stats.Accumulator {
	return h.acc
}

// CopyFailures returns the number of individual copy failures seen.
func (h *Harvest) CopyFailures() int {
	return h.copyFailures
}

func absOrRaw(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
