package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/amityagov/gen/internal/config"
	"github.com/amityagov/gen/internal/migration"
	"github.com/amityagov/gen/pkg/gen"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app is the process state the commands read; tests swap every field.
type app struct {
	fs     afero.Fs
	getwd  func() (string, error)
	now    func() time.Time
	stdout io.Writer
	stderr io.Writer

	cfg  config.Config
	logg *gen.Logger
}

func main() { os.Exit(run(os.Args[1:])) }

func run(args []string) int {
	a := &app{
		fs:     afero.NewOsFs(),
		getwd:  os.Getwd,
		now:    time.Now,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(a.stderr, "error:", err)
		return 1
	}
	return 0
}

func newRootCommand(a *app) *cobra.Command {
	var (
		name, column, schema, dir string
	)

	root := &cobra.Command{
		Use:   "gen <operation> --name NAME [--column COLUMN] [--schema SCHEMA]",
		Short: "Generate a dated SQL migration file",
		Long: `Generate a migration file named "YYYYMMDDNN - <description>.sql" in the
current directory. NN continues today's highest sequence number found in any
*.sql file below the nearest directory holding a .gen_root marker.

Operations:
  script          empty file, spaces in the name become underscores
  create-table    "create table NAME", templated
  alter-table     "alter table NAME"
  drop-table      "drop table NAME"
  add-column      "add column COLUMN to NAME", templated, needs --column
  alter-column    "alter column COLUMN in NAME", needs --column
  drop-column     "drop column COLUMN from NAME", templated, needs --column`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     migration.Names(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := migration.ParseOperation(args[0])
			if err != nil {
				return err
			}
			return a.create(gen.Request{
				Operation: op,
				Name:      name,
				Column:    column,
				Schema:    schema,
			}, dir)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to configuration file (YAML), also read from $GEN_CONFIG")
	pf.String("log-level", "", "Override log level from config (debug|info|error)")

	f := root.Flags()
	f.StringVarP(&name, "name", "n", "", "Table name, or script name for the script operation")
	f.StringVarP(&column, "column", "c", "", "Column name (add-column, alter-column, drop-column)")
	f.StringVarP(&schema, "schema", "s", "", "Schema prefixed to the table in templates")
	f.StringVarP(&dir, "dir", "d", "", "Directory for the new file, relative to the current one")
	_ = root.MarkFlagRequired("name")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List migrations below the root, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print gen version",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(a.stdout)
		},
	})
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv("GEN_CONFIG")
	}
	cfg, err := config.New(a.fs, path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if lvl, _ := flags.GetString("log-level"); lvl != "" {
		cfg.Logger.Level = lvl
	}
	a.cfg = cfg
	a.logg = gen.NewLogger(cfg.Logger.Level, a.stderr)
	if path != "" {
		a.logg.Debug("using config file", "path", path)
	}
	return nil
}

func (a *app) genConfig() (gen.Config, error) {
	wd, err := a.getwd()
	if err != nil {
		return gen.Config{}, err
	}
	return gen.Config{
		FS:           a.fs,
		Dir:          wd,
		Now:          a.now(),
		Marker:       a.cfg.Root.Marker,
		Pattern:      a.cfg.Scan.Pattern,
		SkipDirs:     a.cfg.Scan.SkipDirs,
		OutputDir:    a.cfg.Output.Dir,
		TemplatesDir: a.cfg.Templates.Dir,
		Separator:    a.cfg.Templates.Separator,
		Log:          a.logg,
	}, nil
}

func (a *app) create(req gen.Request, dir string) error {
	cfg, err := a.genConfig()
	if err != nil {
		return err
	}
	if dir != "" {
		cfg.OutputDir = dir
	}
	res, err := gen.Create(cfg, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, res.Path)
	return nil
}

func (a *app) list() error {
	cfg, err := a.genConfig()
	if err != nil {
		return err
	}
	root, entries, err := gen.List(cfg)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		a.logg.Info("no migrations found", "root", root)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(a.stdout)
	t.AppendHeader(table.Row{"Date", "NN", "File"})
	for _, e := range entries {
		rel, err := filepath.Rel(root, e.Path)
		if err != nil {
			rel = e.Path
		}
		t.AppendRow(table.Row{e.Day(), fmt.Sprintf("%02d", e.Index), filepath.ToSlash(rel)})
	}
	t.SetCaption("%d migration(s) in %s", len(entries), root)
	t.Render()
	return nil
}
