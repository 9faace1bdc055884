package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arrowcoil/trilog"
	"github.com/arrowcoil/trilog/cli"
	"github.com/arrowcoil/trilog/engine"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFileParsesConfiguration(t *testing.T) {
	path := writeFile(t, "A => B\n=A\n?B\n")
	store, err := cli.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, store.Rules.Size())
	require.Equal(t, 1, store.Queries.Size())
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := cli.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestLoadFileParseErrorIsWrapped(t *testing.T) {
	path := writeFile(t, "A => B\n?B\n")
	_, err := cli.LoadFile(path)
	require.Error(t, err)
	var se *engine.StructureError
	require.ErrorAs(t, err, &se)
}

func TestRunQueriesSucceedsOnWellFormedStore(t *testing.T) {
	path := writeFile(t, "A => B\n=A\n?B\n")
	store, err := cli.LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cli.RunQueries(store, false))
}

func TestRunQueriesVisualizeDoesNotError(t *testing.T) {
	path := writeFile(t, "A => B\n=A\n?B\n")
	store, err := cli.LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cli.RunQueries(store, true))
}

func TestFormatTruthCoversAllVariants(t *testing.T) {
	require.NotEmpty(t, cli.FormatTruth(trilog.True))
	require.NotEmpty(t, cli.FormatTruth(trilog.False))
	require.NotEmpty(t, cli.FormatTruth(trilog.Ambiguous))
}
