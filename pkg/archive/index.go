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

// Package archive implements the destination side of a harvest run: the
// case-insensitive filename index driving deduplication, and the copier
// that places files into the output or duplicates directory.
package archive

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NormalizeKey returns the deduplication key for a filename. The same
// normalization is applied at seeding, lookup and insertion.
func NormalizeKey(name string) string {
	return strings.ToLower(name)
}

// 🗂️ Index tracks which filenames are already present in the output
// directory. Membership is case-insensitive and a name is added at most once.
type Index struct {
	names map[string]struct{}
}

// 🏭 NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{names: make(map[string]struct{})}
}

// 🌱 Seed loads the index from the current contents of the output directory.
// A listing failure is treated as an empty directory.
func (i *Index) Seed(ctx context.Context, dir string) {
	logger := zerolog.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Debug().Str("dir", dir).Err(err).Msg("seeding from empty, listing failed")
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		i.names[NormalizeKey(entry.Name())] = struct{}{}
	}
	logger.Debug().Int("names", len(i.names)).Str("dir", dir).Msg("index seeded")
}

// Has reports whether a filename is already archived.
func (i *Index) Has(name string) bool {
	_, ok := i.names[NormalizeKey(name)]
	return ok
}

// Add records a filename as archived. It returns false if the name was
// already present, in which case the index is unchanged.
func (i *Index) Add(name string) bool {
	key := NormalizeKey(name)
	if _, ok := i.names[key]; ok {
		return false
	}
	i.names[key] = struct{}{}
	return true
}

// Len returns the number of archived names.
func (i *Index) Len() int {
	return len(i.names)
}
