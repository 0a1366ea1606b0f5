package folders

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
)

// Entry is one child of the library directory.
type Entry struct {
	Name  string
	IsDir bool
}

// Scan returns the subdirectories of root in lexical order. Plain files are
// skipped; dot-prefixed directories such as ".hack" are kept.
func Scan(fsys afero.Fs, root string) ([]Entry, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	infos, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read library dir %s: %w", root, err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		entries = append(entries, Entry{Name: info.Name(), IsDir: true})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Unlinked filters entries down to those whose name is not in linked.
func Unlinked(entries []Entry, linked map[string]struct{}) []Entry {
	var out []Entry
	for _, entry := range entries {
		if _, ok := linked[entry.Name]; ok {
			continue
		}
		out = append(out, entry)
	}
	return out
}
