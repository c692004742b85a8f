package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/afero"
)

// DefaultPattern matches migration files by base name.
const DefaultPattern = "*.sql"

const dateLayout = "20060102"

// 8 digit date, 2 digit sequence, anything after.
var prefixRe = regexp.MustCompile(`^(\d{8})(\d{2}).*$`)

// Entry is a migration file recognised on disk.
type Entry struct {
	Path  string
	Name  string
	Date  time.Time // midnight UTC of the file's calendar day
	Index int
}

// Day formats the entry date as YYYYMMDD.
func (e Entry) Day() string { return e.Date.Format(dateLayout) }

// ParseName extracts date and sequence from a base file name such as
// "2026101702 - create table users.sql". Unparseable dates are rejected.
func ParseName(base string) (Entry, bool) {
	m := prefixRe.FindStringSubmatch(base)
	if m == nil {
		return Entry{}, false
	}
	date, err := time.Parse(dateLayout, m[1])
	if err != nil {
		return Entry{}, false
	}
	idx, err := strconv.Atoi(m[2])
	if err != nil {
		return Entry{}, false
	}
	return Entry{Name: base, Date: date, Index: idx}, true
}

// Options tunes ParseTree.
type Options struct {
	Pattern  string   // base name pattern, DefaultPattern if empty
	SkipDirs []string // directory names never entered
	// Skipped is told about subdirectories and files that could not be read.
	Skipped func(path string, err error)
}

// ParseTree walks root recursively and returns every recognised migration,
// sorted by date, index and path. Symlinked directories are followed; a
// directory reached twice through links is scanned once. Only a failure to
// read root itself is an error.
func ParseTree(fs afero.Fs, root string, opts Options) ([]Entry, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	w := &walker{
		fs:      fs,
		pattern: pattern,
		skip:    make(map[string]struct{}, len(opts.SkipDirs)),
		seen:    make(map[string]struct{}),
		skipped: opts.Skipped,
	}
	for _, s := range opts.SkipDirs {
		w.skip[s] = struct{}{}
	}
	if err := w.dir(filepath.Clean(root)); err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	list := w.list

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Path < b.Path
	})
	return list, nil
}

type walker struct {
	fs      afero.Fs
	pattern string
	skip    map[string]struct{}
	seen    map[string]struct{} // real paths of visited directories
	skipped func(string, error)
	list    []Entry
}

func (w *walker) dir(path string) error {
	key, err := w.realPath(path)
	if err != nil {
		return err
	}
	if _, ok := w.seen[key]; ok {
		return nil
	}
	w.seen[key] = struct{}{}

	f, err := w.fs.Open(path)
	if err != nil {
		return err
	}
	names, err := f.Readdirnames(-1)
	_ = f.Close()
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		p := filepath.Join(path, name)
		// Stat, not Lstat: links to directories are entered
		info, err := w.fs.Stat(p)
		if err != nil {
			w.report(p, err)
			continue
		}
		if info.IsDir() {
			if _, ok := w.skip[name]; ok {
				continue
			}
			if err := w.dir(p); err != nil {
				w.report(p, err)
			}
			continue
		}
		if ok, _ := filepath.Match(w.pattern, name); !ok {
			continue
		}
		e, ok := ParseName(name)
		if !ok {
			continue
		}
		e.Path = p
		w.list = append(w.list, e)
	}
	return nil
}

func (w *walker) report(path string, err error) {
	if w.skipped != nil {
		w.skipped(path, err)
	}
}

// realPath resolves links on the OS filesystem; other filesystems have none.
func (w *walker) realPath(path string) (string, error) {
	if _, ok := w.fs.(*afero.OsFs); ok {
		return filepath.EvalSymlinks(path)
	}
	return path, nil
}
