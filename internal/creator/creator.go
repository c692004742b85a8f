package creator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amityagov/gen/internal/locator"
	"github.com/amityagov/gen/internal/logger"
	"github.com/amityagov/gen/internal/migration"
	"github.com/amityagov/gen/internal/parser"
	"github.com/amityagov/gen/internal/render"
	"github.com/amityagov/gen/internal/sequence"
	"github.com/spf13/afero"
)

// ErrIO wraps filesystem failures while writing the migration.
var ErrIO = errors.New("io error")

// Options carries the process state Create depends on.
type Options struct {
	WorkDir string    // where the search for the root starts
	Now     time.Time // date of the new migration

	Marker       string
	Pattern      string
	SkipDirs     []string
	OutputDir    string // relative to WorkDir; empty means WorkDir
	TemplatesDir string // relative to the root
	Separator    string

	Log *logger.Logger
}

func (o Options) log() *logger.Logger {
	if o.Log == nil {
		return logger.Discard()
	}
	return o.Log
}

func (o Options) scan(log *logger.Logger) parser.Options {
	return parser.Options{
		Pattern:  o.Pattern,
		SkipDirs: o.SkipDirs,
		Skipped: func(path string, err error) {
			log.Debug("skipped unreadable path", "path", path, "err", err)
		},
	}
}

// Result describes a written migration file.
type Result struct {
	Root     string
	Path     string
	FileName string
	Index    int
}

// Create generates a date-and-sequence prefixed SQL migration file for req.
func Create(fs afero.Fs, opts Options, req migration.Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	log := opts.log()
	log.Info("current dir", "path", opts.WorkDir)

	root, err := locator.Find(fs, opts.WorkDir, opts.Marker)
	if err != nil {
		return Result{}, err
	}
	log.Info("root path", "path", root)

	entries, err := parser.ParseTree(fs, root, opts.scan(log))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	log.Debug("scanned migrations", "count", len(entries))

	index, err := sequence.Next(entries, opts.Now)
	if err != nil {
		return Result{}, err
	}

	file := migration.FileName(opts.Now, index, req.Operation.Description(req.Name, req.Column))
	dir := opts.WorkDir
	if opts.OutputDir != "" {
		dir = resolve(opts.WorkDir, opts.OutputDir)
	}
	full := filepath.Join(dir, file)

	// render first: a template failure must not leave a file behind
	r := render.Renderer{FS: fs, Separator: opts.Separator}
	if opts.TemplatesDir != "" {
		r.Dir = resolve(root, opts.TemplatesDir)
	}
	content, err := r.Render(req.Operation.Template(), render.Data{
		Table:  req.Name,
		Column: req.Column,
		Schema: req.Schema,
	})
	if err != nil {
		return Result{}, err
	}

	log.Info("writing file", "name", file)
	if err := write(fs, dir, full, content); err != nil {
		return Result{}, err
	}
	return Result{Root: root, Path: full, FileName: file, Index: index}, nil
}

// List returns every migration under the root, oldest first.
func List(fs afero.Fs, opts Options) (string, []parser.Entry, error) {
	root, err := locator.Find(fs, opts.WorkDir, opts.Marker)
	if err != nil {
		return "", nil, err
	}
	log := opts.log()
	log.Debug("root path", "path", root)
	entries, err := parser.ParseTree(fs, root, opts.scan(log))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return root, entries, nil
}

func write(fs afero.Fs, dir, full, content string) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	// O_EXCL: two concurrent runs can pick the same index; never clobber
	f, err := fs.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrIO, full, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
