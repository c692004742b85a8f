package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/spf13/afero"
)

// DefaultSeparator joins schema and table names.
const DefaultSeparator = "."

const ext = ".sql.tmpl"

// ErrRender wraps every template parse or execution failure.
var ErrRender = errors.New("render template")

//go:embed templates/*.sql.tmpl
var builtin embed.FS

// Data is what a template can reference.
// Column and Schema are empty when absent.
type Data struct {
	Table  string
	Column string
	Schema string
}

// Renderer fills migration templates. Templates found in Dir on FS take
// precedence over the built-in ones.
type Renderer struct {
	FS        afero.Fs
	Dir       string
	Separator string
}

// Render executes the named template. An empty name yields empty content.
func (r Renderer) Render(name string, d Data) (string, error) {
	if name == "" {
		return "", nil
	}
	src, err := r.source(name)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrRender, name, err)
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrRender, name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.values(d)); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrRender, name, err)
	}
	return buf.String(), nil
}

func (r Renderer) values(d Data) map[string]string {
	sep := ""
	if d.Schema != "" {
		sep = r.Separator
		if sep == "" {
			sep = DefaultSeparator
		}
	}
	return map[string]string{
		"TableName":  d.Table,
		"ColumnName": d.Column,
		"SchemaName": d.Schema,
		"Separator":  sep,
	}
}

func (r Renderer) source(name string) (string, error) {
	if r.FS != nil && r.Dir != "" {
		path := filepath.Join(r.Dir, name+ext)
		ok, err := afero.Exists(r.FS, path)
		if err != nil {
			return "", err
		}
		if ok {
			b, err := afero.ReadFile(r.FS, path)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
	}
	b, err := builtin.ReadFile("templates/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("unknown template: %w", err)
	}
	return string(b), nil
}
