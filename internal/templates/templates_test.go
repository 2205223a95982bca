package templates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
	"github.com/jakoblorz/go-scaffold/internal/tree"
)

func newTree() *tree.Tree {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/workspace/nx.json", []byte("{}"))
	return tree.New(fs, "/workspace")
}

func webVars() Vars {
	return Vars{
		"name":           "basic-web",
		"projectName":    "basic-web",
		"projectRoot":    "apps/basic-web",
		"fileName":       "basic-web",
		"className":      "BasicWeb",
		"propertyName":   "basicWeb",
		"offsetFromRoot": "../../",
		"npmScope":       "workspace",
	}
}

func TestSubstitutePath(t *testing.T) {
	vars := Vars{"name": "MyApp", "moduleName": "my_app", "packagePath": "com/acme/app"}

	require.Equal(t, "MyApp/App/MyAppApp.swift", SubstitutePath("__name__/App/__name__App.swift", vars))
	require.Equal(t, "src/my_app/__init__.py", SubstitutePath("src/__moduleName__/__init__.py", vars))
	require.Equal(t, "java/com/acme/app/Main.kt", SubstitutePath("java/__packagePath__/Main.kt", vars))
}

func TestHasSetAndSets(t *testing.T) {
	require.True(t, HasSet("app/web/basic"))
	require.True(t, HasSet("docker/web/frontend"))
	require.False(t, HasSet("app/python/pyramid"))

	sets := Sets()
	require.Contains(t, sets, "app/python/flask")
	require.Contains(t, sets, "app/ios")
	require.Contains(t, sets, "docker/php")
	require.Contains(t, sets, "lib/common")
	require.NotContains(t, sets, "docker/php/docker")
	require.NotContains(t, sets, "app/python")
}

func TestGenerate_WebBasic(t *testing.T) {
	tr := newTree()

	written, err := Generate(tr, "app/web/basic", "apps/basic-web", webVars())
	require.NoError(t, err)
	require.Contains(t, written, "apps/basic-web/src/main.ts")
	require.Contains(t, written, "apps/basic-web/index.html")

	for _, p := range written {
		require.NotContains(t, p, ".tmpl")
	}

	html, err := tr.Read("apps/basic-web/index.html")
	require.NoError(t, err)
	require.Contains(t, string(html), "<title>BasicWeb</title>")

	pkg, err := tr.Read("apps/basic-web/package.json")
	require.NoError(t, err)
	require.Contains(t, string(pkg), `"name": "@workspace/basic-web"`)
	require.Contains(t, string(pkg), "dist/apps/basic-web")
}

func TestGenerate_VerbatimFilesAreNotRendered(t *testing.T) {
	tr := newTree()

	_, err := Generate(tr, "docker/web/frontend", "apps/web", Vars{})
	require.NoError(t, err)

	conf, err := tr.Read("apps/web/nginx.conf")
	require.NoError(t, err)
	require.Contains(t, string(conf), "try_files $uri $uri/ /index.html;")
}

func TestGenerate_MissingVariable(t *testing.T) {
	tr := newTree()

	_, err := Generate(tr, "app/web/basic", "apps/basic-web", Vars{"name": "x"})
	require.ErrorContains(t, err, "executing template")
}

func TestGenerate_UnknownSet(t *testing.T) {
	_, err := Generate(newTree(), "app/cobol", "apps/x", Vars{})
	require.EqualError(t, err, `template set "app/cobol" not found`)
}

func TestRender_SprigFunctions(t *testing.T) {
	out, err := Render("inline", []byte(`{{ .v | replace "." "" }}-{{ upper .n }}`), Vars{"v": "3.11", "n": "api"})
	require.NoError(t, err)
	require.Equal(t, "311-API", string(out))
}

func TestNotes(t *testing.T) {
	note, err := Notes("app/python/flask", Vars{
		"projectName": "flask-app",
		"framework":   "flask",
		"port":        5001,
		"healthPath":  "/api/health",
	})
	require.NoError(t, err)
	require.NotNil(t, note)
	require.Equal(t, "Created Python application flask-app (flask)", note.Title)
	require.Contains(t, note.Body, "http://localhost:5001/api/health")

	note, err = Notes("docker/python", Vars{})
	require.NoError(t, err)
	require.Nil(t, note)
}
