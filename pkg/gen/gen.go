// Package gen creates dated, sequence-numbered SQL migration files.
//
// A project marks its migrations root with an empty ".gen_root" file.
// Every new file is named "YYYYMMDDNN - <description>.sql" where NN continues
// today's highest sequence found anywhere below the root.
package gen

import (
	"os"
	"time"

	"github.com/amityagov/gen/internal/creator"
	"github.com/amityagov/gen/internal/locator"
	"github.com/amityagov/gen/internal/logger"
	"github.com/amityagov/gen/internal/migration"
	"github.com/amityagov/gen/internal/parser"
	"github.com/amityagov/gen/internal/render"
	"github.com/amityagov/gen/internal/sequence"
	"github.com/spf13/afero"
)

type (
	Operation = migration.Operation
	Request   = migration.Request
	Result    = creator.Result
	Entry     = parser.Entry
	Logger    = logger.Logger
)

const (
	Script      = migration.Script
	CreateTable = migration.CreateTable
	AlterTable  = migration.AlterTable
	DropTable   = migration.DropTable
	AddColumn   = migration.AddColumn
	AlterColumn = migration.AlterColumn
	DropColumn  = migration.DropColumn
)

var (
	ErrValidation        = migration.ErrValidation
	ErrRootNotFound      = locator.ErrRootNotFound
	ErrFutureDate        = sequence.ErrFutureDate
	ErrSequenceExhausted = sequence.ErrSequenceExhausted
	ErrRender            = render.ErrRender
	ErrIO                = creator.ErrIO
)

// ParseOperation accepts the kebab-case operation names, e.g. "add-column".
func ParseOperation(s string) (Operation, error) { return migration.ParseOperation(s) }

// NewLogger returns the text logger used by the CLI.
var NewLogger = logger.New

// Config holds everything outside the request itself.
// Zero values fall back to the OS filesystem, the working directory and the wall clock.
type Config struct {
	FS  afero.Fs
	Dir string    // starting directory of the root search
	Now time.Time // date of the new migration

	Marker       string   // root marker file, ".gen_root" if empty
	Pattern      string   // migration file pattern, "*.sql" if empty
	SkipDirs     []string // directory names never scanned
	OutputDir    string   // relative to Dir
	TemplatesDir string   // relative to the root
	Separator    string   // between schema and table, "." if empty

	Log *Logger
}

func (c Config) resolve() (afero.Fs, creator.Options, error) {
	fs := c.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dir := c.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, creator.Options{}, err
		}
		dir = wd
	}
	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	return fs, creator.Options{
		WorkDir:      dir,
		Now:          now,
		Marker:       c.Marker,
		Pattern:      c.Pattern,
		SkipDirs:     c.SkipDirs,
		OutputDir:    c.OutputDir,
		TemplatesDir: c.TemplatesDir,
		Separator:    c.Separator,
		Log:          c.Log,
	}, nil
}

// Create writes a new migration file for req.
func Create(cfg Config, req Request) (Result, error) {
	fs, opts, err := cfg.resolve()
	if err != nil {
		return Result{}, err
	}
	return creator.Create(fs, opts, req)
}

// List returns the root and every migration below it, oldest first.
func List(cfg Config) (string, []Entry, error) {
	fs, opts, err := cfg.resolve()
	if err != nil {
		return "", nil, err
	}
	return creator.List(fs, opts)
}
