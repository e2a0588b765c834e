package names

import (
	"fmt"
	"os"
	"strings"
)

// Options tunes how a pair list is read.
type Options struct {
	// Delimiter overrides the separator chosen from the file extension.
	Delimiter rune
	// Sheet selects an XLSX worksheet by name; empty means the first sheet.
	Sheet string
}

// Loader reads a pair list from one kind of source.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (Set, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load selects a loader based on the file name and returns the records in file order.
// Files with an unknown extension are read as comma separated text.
func Load(path string, opt Options) (Set, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open pair list: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return delimitedLoader{sep: ','}.Load(path, opt)
}

func hasSuffix(filename string, exts ...string) bool {
	name := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func init() {
	Register(delimitedLoader{sep: ',', exts: []string{".csv", ".txt"}})
	Register(delimitedLoader{sep: '\t', exts: []string{".tsv"}})
	Register(xlsxLoader{})
}
