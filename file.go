package main

import (
	"os"
	"path"
	"path/filepath"

	"go.structs.dev/gen"
)

// recordExts are the file extensions picked up when an input path is
// a directory. Explicitly named files are accepted regardless.
var recordExts = []string{".csv", ".txt", ".list", ".hosts"}

// Expand resolves the configured input paths and positional arguments
// into an ordered source list. Directories are walked recursively in
// name order; positional arguments are treated as literal records;
// with neither present the tool falls back to stdin.
func Expand(paths, args []string) []Source {
	var srcs []Source

	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			srcs = append(srcs, walk(p)...)
			continue
		}

		// Missing paths stay in the list; the read step reports
		// the open failure with the path attached.
		srcs = append(srcs, Source{Value: p, Type: FILE})
	}

	for _, arg := range args {
		srcs = append(srcs, Source{Value: arg, Type: ARG})
	}

	if len(srcs) == 0 {
		srcs = append(srcs, Source{Type: STDIN})
	}

	return srcs
}

// walk reads through the directory structure collecting record files
// in a deterministic order.
func walk(dir string) []Source {
	var srcs []Source

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, file := range files {
		if file.IsDir() {
			srcs = append(srcs, walk(path.Join(dir, file.Name()))...)
			continue
		}

		if !gen.Has(recordExts, filepath.Ext(file.Name())) {
			continue
		}

		srcs = append(srcs, Source{
			Value: path.Join(dir, file.Name()),
			Type:  FILE,
		})
	}

	return srcs
}
