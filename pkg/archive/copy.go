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

package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📦 Copier places source files into the archive layout.
type Copier struct {
	outputDir     string
	duplicatesDir string
}

// 🏭 NewCopier creates a copier for the given destinations.
func NewCopier(outputDir, duplicatesDir string) *Copier {
	return &Copier{
		outputDir:     filepath.Clean(outputDir),
		duplicatesDir: filepath.Clean(duplicatesDir),
	}
}

// 📁 EnsureLayout creates the output and duplicates directories if absent.
func (c *Copier) EnsureLayout() error {
	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return errors.Errorf("creating output directory: %w", err)
	}
	if err := os.MkdirAll(c.duplicatesDir, 0755); err != nil {
		return errors.Errorf("creating duplicates directory: %w", err)
	}
	return nil
}

// OutputDir returns the cleaned output directory path.
func (c *Copier) OutputDir() string { return c.outputDir }

// DuplicatesDir returns the cleaned duplicates directory path.
func (c *Copier) DuplicatesDir() string { return c.duplicatesDir }

// ✨ CopyUnique copies src into the output directory. The copy fails if a
// file with the same name already exists there: the first archived file is
// never overwritten.
func (c *Copier) CopyUnique(ctx context.Context, src string) (string, error) {
	dst := filepath.Join(c.outputDir, filepath.Base(src))
	if err := copyFile(src, dst, true); err != nil {
		return "", err
	}
	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("copied unique file")
	return dst, nil
}

// 🔁 CopyDuplicate copies src into the duplicates directory, overwriting any
// same-named file already there.
func (c *Copier) CopyDuplicate(ctx context.Context, src string) (string, error) {
	dst := filepath.Join(c.duplicatesDir, filepath.Base(src))
	if err := copyFile(src, dst, false); err != nil {
		return "", err
	}
	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("copied duplicate file")
	return dst, nil
}

// copyFile streams src to dst. With exclusive set, dst must not exist yet.
func copyFile(src, dst string, exclusive bool) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source %s: %w", src, err)
	}
	defer in.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, 0644)
	if err != nil {
		return errors.Errorf("creating destination %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination %s: %w", dst, err)
	}
	return nil
}
