package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs_Success(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"--dir", "plc/types, plc/lib",
		"--ext", ".udt,.UDT",
		"--format", "json",
		"--output", "out.json",
		"--db", "udt.db",
		"--max-depth", "8",
		"plc/Conveyor.udt",
	})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(cfg.EntryPath))
	assert.Equal(t, "Conveyor.udt", filepath.Base(cfg.EntryPath))
	require.Len(t, cfg.SearchDirs, 2)
	assert.True(t, filepath.IsAbs(cfg.SearchDirs[0]))
	assert.Equal(t, []string{".udt", ".UDT"}, cfg.Extensions)
	assert.Equal(t, "json", cfg.OutputFormat())
	assert.Equal(t, "out.json", cfg.OutputFilename())
	assert.Equal(t, "udt.db", cfg.DBPath)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, "tags", cfg.PackageName())
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"plc/Conveyor.udt"})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Dir(cfg.EntryPath)}, cfg.SearchDirs)
	assert.Equal(t, []string{".udt"}, cfg.Extensions)
	assert.Equal(t, "tree", cfg.Format)
	assert.Equal(t, "", cfg.Output)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, 256, cfg.CacheSize)
}

func TestParseArgs_EnvDefaults(t *testing.T) {
	t.Setenv(EnvDir, "/srv/plc")
	t.Setenv(EnvFormat, "go")
	t.Setenv(EnvDB, "/var/lib/udt.db")

	cfg, err := ParseArgs([]string{"Conveyor.udt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/plc"}, cfg.SearchDirs)
	assert.Equal(t, "go", cfg.Format)
	assert.Equal(t, "/var/lib/udt.db", cfg.DBPath)

	cfg, err = ParseArgs([]string{"-f", "tree", "Conveyor.udt"})
	require.NoError(t, err)
	assert.Equal(t, "tree", cfg.Format, "flags override the environment")
}

func TestParseArgs_Version(t *testing.T) {
	cfg, err := ParseArgs([]string{"--version"})
	require.NoError(t, err)
	assert.True(t, cfg.ShowVersion)
}

func TestParseArgs_FromDB(t *testing.T) {
	cfg, err := ParseArgs([]string{"--db", "udt.db", "--from-db", "Conveyor", "-f", "json"})
	require.NoError(t, err)
	assert.Equal(t, "Conveyor", cfg.FromDB)
	assert.Equal(t, "udt.db", cfg.DBPath)
	assert.Empty(t, cfg.EntryPath)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no file", args: nil},
		{name: "two files", args: []string{"a.udt", "b.udt"}},
		{name: "bad format", args: []string{"--format", "xml", "a.udt"}},
		{name: "bad depth", args: []string{"--max-depth", "0", "a.udt"}},
		{name: "empty ext", args: []string{"--ext", " , ", "a.udt"}},
		{name: "unknown flag", args: []string{"--nope", "a.udt"}},
		{name: "from-db without db", args: []string{"--from-db", "Conveyor"}},
		{name: "from-db with file", args: []string{"--db", "udt.db", "--from-db", "Conveyor", "a.udt"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseArgs(tc.args)
			assert.Error(t, err)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, writeFile(envFile, EnvFormat+"=json\n"))
	// godotenv never overrides variables that are already set.
	t.Setenv(EnvFormat, "")
	require.NoError(t, os.Unsetenv(EnvFormat))

	LoadEnv(envFile)
	cfg, err := ParseArgs([]string{"a.udt"})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)

	LoadEnv(filepath.Join(dir, "missing.env"))
}
