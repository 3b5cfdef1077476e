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

// Package config holds the harvest run configuration and its defaults.
package config

import (
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🔧 Default configuration values
const (
	// DefaultOutputDir is the default destination for unique files.
	DefaultOutputDir = "collected_csv"

	// DuplicatesDirName is the subdirectory of the output dir that
	// receives name-colliding files.
	DuplicatesDirName = "duplicates"

	// DefaultBackupDirName is the directory name that marks a folder as
	// containing exportable CSV data.
	DefaultBackupDirName = "drishti_backup"

	// DefaultExcludeMarker marks backup folders whose contents must never
	// be copied, either as a name fragment or a path segment.
	DefaultExcludeMarker = "nhp"

	// DefaultFilePattern selects the files to harvest within a backup dir.
	DefaultFilePattern = "*.csv"

	// DefaultWindowDays is the recency window: files modified earlier than
	// now minus this many days are invisible to the run.
	DefaultWindowDays = 30

	// DefaultProgressEvery controls how often a progress notification is
	// emitted, in processed files.
	DefaultProgressEvery = 25
)

// DefaultRoots are the root folders scanned when none are given.
var DefaultRoots = []string{
	"/data/field",
	"/data/incoming",
	"/data/archive",
}

// 📝 Config describes a single harvest run.
type Config struct {
	Roots         []string // root folders to scan
	OutputDir     string   // destination for unique files
	BackupDirName string   // directory name identifying a backup folder
	ExcludeMarker string   // marker excluding a backup folder from the run
	FilePattern   string   // glob matched against lower-cased file names
	WindowDays    int      // recency window in days
	ProgressEvery int      // emit progress every N processed files
	Strict        bool     // exit non-zero if any copy failed
}

// 🏭 New returns a config populated with defaults.
func New() *Config {
	return &Config{
		Roots:         append([]string{}, DefaultRoots...),
		OutputDir:     DefaultOutputDir,
		BackupDirName: DefaultBackupDirName,
		ExcludeMarker: DefaultExcludeMarker,
		FilePattern:   DefaultFilePattern,
		WindowDays:    DefaultWindowDays,
		ProgressEvery: DefaultProgressEvery,
	}
}

// ✅ Validate checks the config for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return errors.New("at least one root folder is required")
	}
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if c.BackupDirName == "" {
		return errors.New("backup directory name is required")
	}
	if c.ExcludeMarker == "" {
		return errors.New("exclusion marker is required")
	}
	if c.WindowDays <= 0 {
		return errors.Errorf("window must be positive, got %d days", c.WindowDays)
	}
	if c.ProgressEvery <= 0 {
		return errors.Errorf("progress interval must be positive, got %d", c.ProgressEvery)
	}
	for _, root := range c.Roots {
		if strings.TrimSpace(root) == "" {
			return errors.New("root folders must not be blank")
		}
	}
	return nil
}

// 📁 DuplicatesDir returns the duplicates destination under the output dir.
func (c *Config) DuplicatesDir() string {
	return filepath.Join(c.OutputDir, DuplicatesDirName)
}

// 🚫 ExcludedDirName returns the excluded variant of the backup dir name.
func (c *Config) ExcludedDirName() string {
	return c.BackupDirName + "_" + c.ExcludeMarker
}

// ⏱️ Cutoff returns the oldest admissible modification time: now minus the
// window, truncated to local midnight.
func (c *Config) Cutoff(now time.Time) time.Time {
	t := now.AddDate(0, 0, -c.WindowDays)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
