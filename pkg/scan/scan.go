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

// Package scan discovers backup directories under a root and lists the
// recently modified files inside them.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// 🔍 Scanner walks roots looking for backup directories.
type Scanner struct {
	backupDirName string
	excludedName  string
	marker        string
	filePattern   string
}

// 🏭 New creates a scanner for the given backup-folder naming convention.
func New(backupDirName, marker, filePattern string) *Scanner {
	return &Scanner{
		backupDirName: backupDirName,
		excludedName:  backupDirName + "_" + marker,
		marker:        marker,
		filePattern:   filePattern,
	}
}

// 📊 Discovery is the result of walking one root.
type Discovery struct {
	Dirs     []string // directories retained for processing
	Excluded int      // candidate directories rejected by the exclusion marker
}

// IsCandidate reports whether a directory name matches the backup-folder
// naming pattern: the plain name, or the plain name followed by a suffix.
func (s *Scanner) IsCandidate(name string) bool {
	return strings.HasPrefix(name, s.backupDirName)
}

// IsExcludedName reports whether a directory name is excluded outright:
// either the exact excluded variant, or any name containing the marker.
func (s *Scanner) IsExcludedName(name string) bool {
	return name == s.excludedName || strings.Contains(name, s.marker)
}

// HasExcludedSegment reports whether any segment of the path contains the
// marker. This guards against the marker sitting in a parent directory name
// rather than the backup directory itself.
func (s *Scanner) HasExcludedSegment(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.Contains(seg, s.marker) {
			return true
		}
	}
	return false
}

// Excluded combines the name and path checks for a candidate directory.
func (s *Scanner) Excluded(name, path string) bool {
	return s.IsExcludedName(name) || s.HasExcludedSegment(path)
}

// 🚶 DiscoverBackupDirs recursively enumerates backup directories under root.
// Only candidates named exactly the plain backup-folder name, with no marker
// anywhere in their path, are retained. Marker-hit candidates are counted in
// Excluded; candidates with any other suffix are silently skipped.
// Enumeration errors are treated as empty results for that location.
func (s *Scanner) DiscoverBackupDirs(ctx context.Context, root string) Discovery {
	logger := zerolog.Ctx(ctx)

	var disc Discovery
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug().Str("path", path).Err(err).Msg("skipping unreadable location")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}

		name := d.Name()
		if !s.IsCandidate(name) {
			return nil
		}

		switch {
		case s.Excluded(name, path):
			disc.Excluded++
			logger.Debug().Str("dir", path).Msg("backup dir excluded by marker")
		case name == s.backupDirName:
			disc.Dirs = append(disc.Dirs, path)
			logger.Debug().Str("dir", path).Msg("backup dir retained")
		default:
			// Suffixed but not marker-excluded, e.g. drishti_backup_old.
			logger.Debug().Str("dir", path).Msg("backup dir variant ignored")
		}
		return nil
	})
	if err != nil {
		logger.Debug().Str("root", root).Err(err).Msg("walk aborted, treating remainder as empty")
	}
	return disc
}

// 📄 ListRecentFiles lists files in dir matching the file pattern whose
// modification time is at or after cutoff. Older files are invisible: not
// returned, not counted anywhere. Listing errors yield an empty result.
func (s *Scanner) ListRecentFiles(ctx context.Context, dir string, cutoff time.Time) []string {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug().Str("dir", dir).Err(err).Msg("listing failed, treating as empty")
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := doublestar.Match(s.filePattern, strings.ToLower(entry.Name()))
		if err != nil {
			logger.Debug().Str("pattern", s.filePattern).Err(err).Msg("error matching pattern")
			continue
		}
		if !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Debug().Str("file", entry.Name()).Err(err).Msg("stat failed, skipping file")
			continue
		}
		if info.ModTime().Before(cutoff) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files
}
