package names

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// delimitedLoader reads one "name1<sep>name2" record per line. Names are taken
// verbatim: there is no quoting, so a separator can never appear inside a name.
type delimitedLoader struct {
	sep  rune
	exts []string
}

func (d delimitedLoader) CanLoad(filename string) bool {
	return hasSuffix(filename, d.exts...)
}

func (d delimitedLoader) Load(path string, opt Options) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pair list: %w", err)
	}
	defer f.Close()

	sep := d.sep
	if opt.Delimiter != 0 {
		sep = opt.Delimiter
	}

	var (
		out   Set
		line  int
		blank int // first blank line not yet followed by a record
	)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++
		text := sc.Text()
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		text = strings.TrimRightFunc(text, unicode.IsSpace)
		if text == "" {
			if blank == 0 {
				blank = line
			}
			continue
		}
		if blank != 0 {
			return nil, &LineError{Path: path, Line: blank, Fields: 0}
		}
		fields := strings.Split(text, string(sep))
		if len(fields) != 2 {
			return nil, &LineError{Path: path, Line: line, Fields: len(fields)}
		}
		out = append(out, Pair{First: fields[0], Second: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
