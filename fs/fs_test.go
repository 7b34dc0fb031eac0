// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tarmio/framing/fs"
)

func TestStat_EmptyRegularFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := fs.Stat(p)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size != 0 {
		t.Fatalf("Size = %d, want 0", info.Size)
	}
	if !info.IsRegularFile {
		t.Fatalf("IsRegularFile = false")
	}
	if info.IsDirectory {
		t.Fatalf("IsDirectory = true")
	}
}

func TestStat_NonExistentPath(t *testing.T) {
	_, err := fs.Stat(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, fs.ErrNoSuchFileOrDirectory) {
		t.Fatalf("err = %v, want ErrNoSuchFileOrDirectory", err)
	}
}

func TestStat_Directory(t *testing.T) {
	dir := t.TempDir()
	info, err := fs.Stat(dir)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !info.IsDirectory {
		t.Fatalf("IsDirectory = false")
	}
	if info.IsRegularFile {
		t.Fatalf("IsRegularFile = true")
	}
}
