package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/backmassage/renamer/internal/fileops"
)

// Discover expands paths into the files to plan. Files are taken as
// given; a directory contributes the files directly inside it, or every
// file below it when recursive is set. The result is sorted and free of
// duplicates for deterministic processing order.
func Discover(fs afero.Fs, paths []string, recursive bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := fs.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(fileops.ErrFileNotFound, "%s", root)
			}
			return nil, errors.Wrapf(err, "stat %s", root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		if recursive {
			err = afero.Walk(fs, root, func(path string, fi os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !fi.IsDir() {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, errors.Wrapf(err, "walk %s", root)
			}
			continue
		}

		entries, err := afero.ReadDir(fs, root)
		if err != nil {
			return nil, errors.Wrapf(err, "read dir %s", root)
		}
		for _, e := range entries {
			if !e.IsDir() {
				add(filepath.Join(root, e.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
