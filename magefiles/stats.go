//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
)

// pkgStats holds line counts for one Go package directory.
type pkgStats struct {
	prod, test int
}

// Stats prints production and test line counts per package.
func Stats() error {
	stats := map[string]*pkgStats{}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch path {
			case ".git", "vendor", "magefiles", "_examples", binaryDir:
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)
		if stats[dir] == nil {
			stats[dir] = &pkgStats{}
		}
		lines := bytes.Count(data, []byte("\n"))
		if strings.HasSuffix(path, "_test.go") {
			stats[dir].test += lines
		} else {
			stats[dir].prod += lines
		}
		return nil
	})
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(stats))
	for dir := range stats {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "package\tprod\ttest\t")
	var total pkgStats
	for _, dir := range dirs {
		s := stats[dir]
		fmt.Fprintf(w, "%s\t%d\t%d\t\n", dir, s.prod, s.test)
		total.prod += s.prod
		total.test += s.test
	}
	fmt.Fprintf(w, "total\t%d\t%d\t\n", total.prod, total.test)
	return w.Flush()
}
