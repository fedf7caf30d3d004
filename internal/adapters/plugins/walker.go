package plugins

import (
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// alwaysIgnored directories are never walked.
var alwaysIgnored = []string{".git", ".jj", ".grove", "node_modules"}

// walkFiles yields the slash separated paths of regular files under root,
// relative to root. Ignore patterns match a base name or a relative path.
func walkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if ignored(d, rel, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(rel, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", root))
		}
	}
}

func ignored(d fs.DirEntry, rel string, ignores []string) bool {
	name := d.Name()
	if d.IsDir() && slices.Contains(alwaysIgnored, name) {
		return true
	}
	for _, pattern := range ignores {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// fileDigest returns the xxhash of a file's content.
func fileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the directory walk
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
