// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fs provides the filesystem stat wrapper the framing core
// treats as an external collaborator: a thin, synchronous surface over
// os.Stat, grounded in the original stat(loop, path, callback) plus
// StatData/is_regular_file/is_directory predicates.
//
// There is no third-party filesystem stat library anywhere in the
// retrieved example pack; os.Stat and os.FileInfo already give exactly
// the bit of information StatData exposes, so this package is a
// deliberate, justified use of the standard library (see DESIGN.md).
package fs

import (
	"errors"
	"os"
)

// ErrNoSuchFileOrDirectory mirrors the source's NO_SUCH_FILE_OR_DIRECTORY
// error kind for a Stat call on a path that does not exist.
var ErrNoSuchFileOrDirectory = errors.New("fs: no such file or directory")

// Info is the subset of os.FileInfo the framing ecosystem cares about,
// named after the source's StatData/is_regular_file/is_directory split.
type Info struct {
	Size         int64
	IsRegularFile bool
	IsDirectory  bool
	ModeBits     os.FileMode
}

// Stat returns Info for path, or ErrNoSuchFileOrDirectory if it does
// not exist, or the underlying os error for any other failure.
func Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, ErrNoSuchFileOrDirectory
		}
		return Info{}, err
	}
	return Info{
		Size:          fi.Size(),
		IsRegularFile: fi.Mode().IsRegular(),
		IsDirectory:   fi.IsDir(),
		ModeBits:      fi.Mode(),
	}, nil
}
