// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iopath provides a small Path helper grounded in the
// source's Boost-derived Path class, scoped down to the operations the
// rest of this module actually needs: joining, extension access, and
// separator-normalized string rendering. Go's path/filepath already
// covers the portability concerns (separator, codecvt-style encoding
// conversion is not applicable — Go strings are UTF-8 throughout) that
// motivated the original's hand-rolled class, so this package is a
// deliberate, justified use of the standard library (see DESIGN.md).
package iopath

import (
	"path/filepath"
	"strings"
)

// Path is a lightweight wrapper around a filesystem path string,
// normalized to the host's preferred separator on construction.
type Path struct {
	s string
}

// New normalizes s and returns a Path.
func New(s string) Path {
	return Path{s: filepath.Clean(s)}
}

// Join appends elem as an additional path component.
func (p Path) Join(elem ...string) Path {
	return Path{s: filepath.Join(append([]string{p.s}, elem...)...)}
}

// Extension returns the file extension, including the leading dot, or
// "" if there is none.
func (p Path) Extension() string { return filepath.Ext(p.s) }

// Filename returns the last path component.
func (p Path) Filename() string { return filepath.Base(p.s) }

// ParentPath returns the path without its final component.
func (p Path) ParentPath() Path { return Path{s: filepath.Dir(p.s)} }

// IsAbsolute reports whether the path is rooted.
func (p Path) IsAbsolute() bool { return filepath.IsAbs(p.s) }

// String renders the path using the host's preferred separator.
func (p Path) String() string { return p.s }

// GenericString renders the path with forward slashes, regardless of
// host platform, matching the source's generic_string() accessor.
func (p Path) GenericString() string {
	return strings.ReplaceAll(p.s, string(filepath.Separator), "/")
}

// Empty reports whether the path holds no characters.
func (p Path) Empty() bool { return p.s == "" }
