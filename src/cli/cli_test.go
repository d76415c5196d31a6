package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oreore-lsp/src/config"
	versionpkg "oreore-lsp/src/internal/version"
)

func cliGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithNameSuffix(".gold.txt"))
}

// runCLI executes the root command with args and returns what it printed
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	configPath, logLevel = "", ""
	watchConfig, writeFiles, showDiff = false, false, false
	formatJSON, force, verbose = false, false, false

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestPrintTree_Text(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintTree(context.Background(), &out, false))

	cliGoldie(t).Assert(t, t.Name(), out.Bytes())
}

func TestPrintTree_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintTree(context.Background(), &out, true))

	cliGoldie(t).Assert(t, t.Name(), out.Bytes())

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
}

func TestTreeCommand(t *testing.T) {
	out, err := runCLI(t, "", CmdTree)
	require.NoError(t, err)

	cliGoldie(t).Assert(t, "TestPrintTree_Text", []byte(out))
}

func TestRunFormat_Stdin(t *testing.T) {
	var out bytes.Buffer
	err := RunFormat(strings.NewReader("  hello\r\n\t\tworld\n"), &out, nil, FormatOptions{})
	require.NoError(t, err)

	assert.Equal(t, "hello\nworld\n", out.String())
}

func TestRunFormat_StdinDiff(t *testing.T) {
	var out bytes.Buffer
	err := RunFormat(strings.NewReader("apple\n  banana\ncherry\n"), &out, nil, FormatOptions{Diff: true})
	require.NoError(t, err)

	diff := out.String()
	assert.Contains(t, diff, "--- a/<stdin>\n")
	assert.Contains(t, diff, "+++ b/<stdin>\n")
	assert.Contains(t, diff, "-  banana\n")
	assert.Contains(t, diff, "+banana\n")
	assert.Contains(t, diff, " apple\n")
}

func TestRunFormat_DiffOfFormattedTextIsEmpty(t *testing.T) {
	var out bytes.Buffer
	err := RunFormat(strings.NewReader("apple\nbanana\n"), &out, nil, FormatOptions{Diff: true})
	require.NoError(t, err)

	assert.Empty(t, out.String())
}

func TestRunFormat_WriteNeedsFiles(t *testing.T) {
	var out bytes.Buffer
	err := RunFormat(strings.NewReader("  x"), &out, nil, FormatOptions{Write: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--write")
}

func TestRunFormat_WriteFiles(t *testing.T) {
	dir := t.TempDir()
	dirty := writeFile(t, dir, "dirty.oreore", "  foo\n    bar\n")
	clean := writeFile(t, dir, "clean.oreore", "foo\nbar\n")

	var out bytes.Buffer
	require.NoError(t, RunFormat(nil, &out, []string{dirty, clean}, FormatOptions{Write: true}))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(dirty)
	require.NoError(t, err)
	assert.Equal(t, "foo\nbar\n", string(data))

	info, err := os.Stat(dirty)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err = os.ReadFile(clean)
	require.NoError(t, err)
	assert.Equal(t, "foo\nbar\n", string(data))
}

func TestRunFormat_WriteAndDiff(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.oreore", "\tfoo\n")

	var out bytes.Buffer
	require.NoError(t, RunFormat(nil, &out, []string{path}, FormatOptions{Write: true, Diff: true}))

	assert.Contains(t, out.String(), "-\tfoo\n")
	assert.Contains(t, out.String(), "+foo\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "foo\n", string(data))
}

func TestRunFormat_MissingFileIsCounted(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.oreore", " a\n")
	missing := filepath.Join(dir, "missing.oreore")

	var out bytes.Buffer
	err := RunFormat(nil, &out, []string{ok, missing}, FormatOptions{})
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files could not be formatted", err.Error())
	assert.Equal(t, "a\n", out.String())
}

func TestFormatCommand_Stdin(t *testing.T) {
	out, err := runCLI(t, "   indented\n", CmdFormat)
	require.NoError(t, err)
	assert.Equal(t, "indented\n", out)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	var out bytes.Buffer
	require.NoError(t, InitConfig(&out, path, false))
	assert.Equal(t, "Wrote default configuration to "+path+"\n", out.String())

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfig(), cfg)

	err = InitConfig(&out, path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, InitConfig(&out, path, true))
}

func TestShowConfig_ExplicitPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "language_id: custom\nhello_message: hi there\n")

	var out bytes.Buffer
	require.NoError(t, ShowConfig(&out, path))

	shown := out.String()
	assert.True(t, strings.HasPrefix(shown, "# source: "+path+"\n"))
	assert.Contains(t, shown, "language_id: custom")
	assert.Contains(t, shown, "hello_message: hi there")
	assert.Contains(t, shown, "no_result: error")
}

func TestShowConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	require.NoError(t, ShowConfig(&out, ""))

	assert.True(t, strings.HasPrefix(out.String(), "# source: built-in defaults\n"))
	assert.Contains(t, out.String(), "language_id: oreore")
}

func TestLoadConfigWithFallback(t *testing.T) {
	t.Run("explicit path that does not exist", func(t *testing.T) {
		_, _, err := LoadConfigWithFallback(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config from")
	})

	t.Run("default file is used when present", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		require.NoError(t, os.MkdirAll(filepath.Join(home, ".oreore-lsp"), 0755))
		path := writeFile(t, filepath.Join(home, ".oreore-lsp"), "config.yaml", "log_level: debug\n")

		cfg, source, err := LoadConfigWithFallback("")
		require.NoError(t, err)
		assert.Equal(t, path, source)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("broken default file falls back to defaults", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		require.NoError(t, os.MkdirAll(filepath.Join(home, ".oreore-lsp"), 0755))
		writeFile(t, filepath.Join(home, ".oreore-lsp"), "config.yaml", "no_result: sometimes\n")

		cfg, source, err := LoadConfigWithFallback("")
		require.NoError(t, err)
		assert.Empty(t, source)
		assert.Equal(t, config.GetDefaultConfig(), cfg)
	})
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "", CmdConfig, CmdConfigInit, path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runCLI(t, "", CmdConfig, CmdConfigInit, path)
	require.Error(t, err)

	_, err = runCLI(t, "", CmdConfig, CmdConfigInit, "--force", path)
	require.NoError(t, err)
}

func TestRunServer_RejectsBadLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := RunServer(context.Background(), "", "loud", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-level")
}

func TestRunServer_WatchNeedsConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := RunServer(context.Background(), "", "", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch-config")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", CmdVersion)
	require.NoError(t, err)
	assert.Equal(t, "oreore-lsp "+versionpkg.Version+"\n", out)

	out, err = runCLI(t, "", CmdVersion, "--verbose")
	require.NoError(t, err)
	assert.Equal(t, versionpkg.GetFullVersionInfo()+"\n", out)

	out, err = runCLI(t, "", CmdVersion, "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, versionpkg.Version, info["version"])
	assert.Contains(t, info, "goVersion")
}

func TestDescribeSource(t *testing.T) {
	assert.Equal(t, "built-in defaults", describeSource(""))
	assert.Equal(t, "/etc/oreore.yaml", describeSource("/etc/oreore.yaml"))
}
