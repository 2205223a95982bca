package tree

import (
	"io/fs"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/jakoblorz/go-scaffold/internal/filesystem"
)

func newTestTree() (*Tree, *filesystem.MockFileSystem) {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/workspace/package.json", []byte(`{"name":"root"}`))
	mfs.AddFile("/workspace/apps/existing/project.json", []byte(`{"name":"existing"}`))
	mfs.AddFile("/workspace/apps/existing/src/main.ts", []byte("console.log(1)\n"))
	return New(mfs, "/workspace"), mfs
}

func TestTree_ReadThroughBase(t *testing.T) {
	tr, _ := newTestTree()

	require.True(t, tr.Exists("apps/existing"))
	require.True(t, tr.IsFile("apps/existing/project.json"))
	require.False(t, tr.IsFile("apps/existing"))

	data, err := tr.Read("apps/existing/project.json")
	require.NoError(t, err)
	require.Equal(t, `{"name":"existing"}`, string(data))

	_, err = tr.Read("apps/missing/project.json")
	require.Error(t, err)
}

func TestTree_WriteIsStagedUntilCommit(t *testing.T) {
	tr, mfs := newTestTree()

	require.NoError(t, tr.Write("apps/web/src/main.ts", []byte("export {}\n")))
	require.True(t, tr.Exists("apps/web"))
	require.True(t, tr.IsFile("apps/web/src/main.ts"))
	require.False(t, mfs.Exists("/workspace/apps/web/src/main.ts"))

	require.NoError(t, tr.Commit())

	data, err := mfs.ReadFile("/workspace/apps/web/src/main.ts")
	require.NoError(t, err)
	require.Equal(t, "export {}\n", string(data))
	require.Empty(t, tr.ListChanges())
}

func TestTree_ListChanges(t *testing.T) {
	tr, _ := newTestTree()

	require.NoError(t, tr.Write("apps/web/index.html", []byte("<html></html>")))
	require.NoError(t, tr.Write("apps/existing/project.json", []byte(`{"name":"renamed"}`)))
	require.NoError(t, tr.Write("package.json", []byte(`{"name":"root"}`)))
	require.NoError(t, tr.Delete("apps/existing/src"))

	changes := tr.ListChanges()
	require.Len(t, changes, 3)

	require.Equal(t, ChangeUpdate, changes[0].Type)
	require.Equal(t, "apps/existing/project.json", changes[0].Path)
	require.Equal(t, ChangeDelete, changes[1].Type)
	require.Equal(t, "apps/existing/src", changes[1].Path)
	require.Equal(t, ChangeCreate, changes[2].Type)
	require.Equal(t, "apps/web/index.html", changes[2].Path)
}

func TestTree_DeleteHidesBaseAndStaged(t *testing.T) {
	tr, mfs := newTestTree()

	require.NoError(t, tr.Write("apps/existing/new.txt", []byte("new")))
	require.NoError(t, tr.Delete("apps/existing"))

	require.False(t, tr.Exists("apps/existing"))
	require.False(t, tr.IsFile("apps/existing/project.json"))
	require.False(t, tr.IsFile("apps/existing/new.txt"))
	require.NotContains(t, tr.Children("apps"), "existing")

	require.NoError(t, tr.Commit())
	require.False(t, mfs.Exists("/workspace/apps/existing"))
	require.False(t, mfs.Exists("/workspace/apps/existing/src/main.ts"))
}

func TestTree_DeleteMissingIsNoop(t *testing.T) {
	tr, _ := newTestTree()

	require.NoError(t, tr.Delete("apps/nothing"))
	require.Empty(t, tr.ListChanges())
}

func TestTree_WriteAfterDeleteKeepsSiblingsHidden(t *testing.T) {
	tr, _ := newTestTree()

	require.NoError(t, tr.Delete("apps/existing"))
	require.NoError(t, tr.Write("apps/existing/project.json", []byte(`{}`)))

	require.True(t, tr.IsFile("apps/existing/project.json"))
	require.False(t, tr.IsFile("apps/existing/src/main.ts"))
	require.Equal(t, []string{"project.json"}, tr.Children("apps/existing"))
}

func TestTree_Rename(t *testing.T) {
	tr, mfs := newTestTree()

	require.NoError(t, tr.Write("apps/php/dotenv", []byte("APP_ENV=dev\n")))
	require.NoError(t, tr.Rename("apps/php/dotenv", "apps/php/.env"))
	require.False(t, tr.Exists("apps/php/dotenv"))

	require.NoError(t, tr.Rename("apps/existing/src/main.ts", "apps/existing/main.ts"))

	require.NoError(t, tr.Commit())
	require.True(t, mfs.Exists("/workspace/apps/php/.env"))
	require.False(t, mfs.Exists("/workspace/apps/php/dotenv"))
	require.True(t, mfs.Exists("/workspace/apps/existing/main.ts"))
	require.False(t, mfs.Exists("/workspace/apps/existing/src/main.ts"))

	err := tr.Rename("apps/missing", "apps/other")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestTree_Children(t *testing.T) {
	tr, _ := newTestTree()

	require.NoError(t, tr.Write("apps/web/project.json", []byte(`{}`)))
	require.Equal(t, []string{"existing", "web"}, tr.Children("apps"))
	require.Equal(t, []string{"apps", "package.json"}, tr.Children("."))
	require.Empty(t, tr.Children("apps/nothing"))
}

func TestTree_SetExecutable(t *testing.T) {
	tr, mfs := newTestTree()

	require.NoError(t, tr.Write("apps/android/gradlew", []byte("#!/bin/sh\n")))
	require.Equal(t, fs.FileMode(0644), tr.Mode("apps/android/gradlew"))

	require.NoError(t, tr.SetExecutable("apps/android/gradlew"))
	require.Equal(t, fs.FileMode(0755), tr.Mode("apps/android/gradlew"))

	require.NoError(t, tr.Commit())
	info, err := mfs.Stat("/workspace/apps/android/gradlew")
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0755), info.Mode().Perm())
}

func TestTree_WriteOutsideWorkspace(t *testing.T) {
	tr, _ := newTestTree()

	require.Error(t, tr.Write("../escape.txt", []byte("x")))
	require.Error(t, tr.Write("", []byte("x")))
}

func TestTree_WithStage(t *testing.T) {
	stage := memfs.New()
	tr := New(filesystem.NewMockFileSystem(), "/workspace", WithStage(stage))

	require.NoError(t, tr.Write("apps/web/index.html", []byte("<html></html>")))

	data, err := util.ReadFile(stage, "/apps/web/index.html")
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))
	require.Len(t, tr.ListChanges(), 1)
}

func TestTree_CommitWriteError(t *testing.T) {
	tr, mfs := newTestTree()
	mfs.WriteFileError = fs.ErrPermission

	require.NoError(t, tr.Write("apps/web/main.ts", []byte("x")))
	err := tr.Commit()
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestFormatFiles(t *testing.T) {
	tr, _ := newTestTree()

	require.NoError(t, tr.Write("apps/web/project.json", []byte(`{"name":"web","tags":["a","b"]}`)))
	require.NoError(t, tr.Write("apps/web/broken.json", []byte(`{"name":`)))
	require.NoError(t, tr.Write("apps/web/main.ts", []byte(`const a = {"b":1}`)))

	formatted, err := FormatFiles(tr)
	require.NoError(t, err)
	require.Equal(t, []string{"apps/web/project.json"}, formatted)

	data, err := tr.Read("apps/web/project.json")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"name\": \"web\",\n  \"tags\": [\"a\", \"b\"]\n}\n", string(data))

	data, err = tr.Read("apps/web/broken.json")
	require.NoError(t, err)
	require.Equal(t, `{"name":`, string(data))
}
