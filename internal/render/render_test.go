package render

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestRender_CreateTableWithSchema(t *testing.T) {
	out, err := Renderer{}.Render("create_table", Data{Table: "users", Schema: "public"})
	require.NoError(t, err)
	require.Contains(t, out, "create table public.users")
}

func TestRender_CreateTableWithoutSchema(t *testing.T) {
	out, err := Renderer{}.Render("create_table", Data{Table: "users"})
	require.NoError(t, err)
	require.Contains(t, out, "create table users\n")
	require.NotContains(t, out, ".users")
}

func TestRender_ColumnTemplates(t *testing.T) {
	out, err := Renderer{}.Render("add_column", Data{Table: "users", Column: "email", Schema: "crm"})
	require.NoError(t, err)
	require.Contains(t, out, "alter table crm.users")
	require.Contains(t, out, "add column email")

	out, err = Renderer{}.Render("drop_column", Data{Table: "users", Column: "email"})
	require.NoError(t, err)
	require.Contains(t, out, "alter table users")
	require.Contains(t, out, "drop column email;")
}

func TestRender_CustomSeparator(t *testing.T) {
	out, err := Renderer{Separator: "_"}.Render("create_table", Data{Table: "users", Schema: "app"})
	require.NoError(t, err)
	require.Contains(t, out, "create table app_users")
}

func TestRender_EmptyName(t *testing.T) {
	out, err := Renderer{}.Render("", Data{Table: "users"})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRender_OverrideFromDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/proj/templates", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/proj/templates/create_table.sql.tmpl",
		[]byte("CREATE TABLE {{.SchemaName}}{{.Separator}}{{.TableName}} ();"), 0o644))

	r := Renderer{FS: fs, Dir: "/proj/templates"}
	out, err := r.Render("create_table", Data{Table: "users", Schema: "public"})
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE public.users ();", out)

	// not overridden: falls back to the built-in template
	out, err = r.Render("drop_column", Data{Table: "users", Column: "email"})
	require.NoError(t, err)
	require.Contains(t, out, "drop column email")
}

func TestRender_Failures(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/t", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/t/create_table.sql.tmpl", []byte("{{.TableName"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/t/add_column.sql.tmpl", []byte("{{.Default}}"), 0o644))
	r := Renderer{FS: fs, Dir: "/t"}

	_, err := r.Render("create_table", Data{Table: "users"})
	require.ErrorIs(t, err, ErrRender)

	_, err = r.Render("add_column", Data{Table: "users", Column: "email"})
	require.ErrorIs(t, err, ErrRender)

	_, err = Renderer{}.Render("rename_table", Data{Table: "users"})
	require.ErrorIs(t, err, ErrRender)
}
