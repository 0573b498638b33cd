//go:build !unix

package filesystem

import "io/fs"

func chownLike(path string, info fs.FileInfo) error {
	return nil
}
