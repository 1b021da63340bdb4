package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cetheme/internal/config"
	"github.com/jmylchreest/cetheme/internal/model"
	"github.com/jmylchreest/cetheme/internal/palette"
	"github.com/jmylchreest/cetheme/internal/schema"
)

const testMaster = `<?xml version="1.0" encoding="utf-8"?>
<key name="Software">
	<key name="ConEmu">
		<key name=".Vanilla" modified="2019-08-09 10:00:00" build="190809">
			<value name="StartType" type="hex" data="02"/>
		</key>
	</key>
</key>
`

func testPalette(name string) string {
	return `<?xml version="1.0" encoding="utf-8"?>
<key name="Palette1" modified="2015-01-01 00:00:00" build="150101">
	<value name="Name" type="string" data="` + name + `"/>
	<value name="ColorTable00" type="dword" data="00362b00"/>
</key>
`
}

func TestPlanActions(t *testing.T) {
	tests := []struct {
		name          string
		opts          rootOptions
		dirSet        bool
		backupDefault bool
		want          actionPlan
	}{
		{
			name: "no flags imports base directory",
			want: actionPlan{scanDir: true, anyWrite: true},
		},
		{
			name: "file suppresses folder import",
			opts: rootOptions{file: "Dracula.xml"},
			want: actionPlan{file: "Dracula.xml", anyWrite: true},
		},
		{
			name:   "explicit dir with file imports both",
			opts:   rootOptions{file: "Dracula.xml", dir: "themes"},
			dirSet: true,
			want:   actionPlan{file: "Dracula.xml", scanDir: true, dir: "themes", anyWrite: true},
		},
		{
			name: "backup alone does not import",
			opts: rootOptions{backup: true},
			want: actionPlan{backup: true},
		},
		{
			name: "list alone does not import",
			opts: rootOptions{list: true},
			want: actionPlan{list: true},
		},
		{
			name:   "dir none disables folder import",
			opts:   rootOptions{dir: "None"},
			dirSet: true,
			want:   actionPlan{dir: "None"},
		},
		{
			name:          "configured backup runs alongside import",
			backupDefault: true,
			want:          actionPlan{backup: true, scanDir: true, anyWrite: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planActions(tt.opts, tt.dirSet, tt.backupDefault))
		})
	}
}

func TestResolveBaseDir(t *testing.T) {
	dir, err := resolveBaseDir("/opt/themes", func() (string, error) {
		t.Fatal("executable should not be consulted")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "/opt/themes", dir)

	exeDir := t.TempDir()
	dir, err = resolveBaseDir("", func() (string, error) {
		return filepath.Join(exeDir, "cetheme"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, exeDir, dir)

	_, err = resolveBaseDir("", func() (string, error) {
		return "", errors.New("no executable")
	})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "no themes processed", summarize(palette.Report{}))

	report := palette.Report{Outcomes: []palette.Outcome{
		{Status: palette.StatusImported},
		{Status: palette.StatusImported},
		{Status: palette.StatusDuplicate},
		{Status: palette.StatusInvalid},
	}}
	assert.Equal(t, "import finished: 2 imported, 1 duplicate, 1 invalid", summarize(report))
}

func TestLookupTheme(t *testing.T) {
	themes := []model.Theme{
		{ID: 0, Key: "Palette0", Name: "Dracula"},
		{ID: 1, Key: "Palette1", Name: "7"},
		{ID: 7, Key: "Palette7", Name: "Nord"},
	}

	require.NotNil(t, lookupTheme(themes, "Dracula"))
	assert.Equal(t, "Nord", lookupTheme(themes, "Palette7").Name)
	// An exact name match wins over an id.
	assert.Equal(t, 1, lookupTheme(themes, "7").ID)
	assert.Nil(t, lookupTheme(themes, "Solarized"))
}

func TestSelectThemes(t *testing.T) {
	themes := []model.Theme{
		{ID: 0, Name: "Solarized Dark", Build: "180626"},
		{ID: 1, Name: "Dracula", Build: "191110"},
		{ID: 2, Name: "Gruvbox Dark", Build: "230724"},
	}

	got, err := selectThemes(themes, listOptions{search: "dark", sortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gruvbox Dark", "Solarized Dark"}, names(got))

	got, err = selectThemes(themes, listOptions{filter: "build>190000", sortOrder: "desc", limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gruvbox Dark"}, names(got))

	_, err = selectThemes(themes, listOptions{filter: "colour=red"})
	assert.Error(t, err)

	_, err = selectThemes(themes, listOptions{since: "forever"})
	assert.Error(t, err)
}

func TestValidateFiles(t *testing.T) {
	validator, err := schema.NewValidator(slog.New(slog.NewTextHandler(io.Discard, nil)), "")
	require.NoError(t, err)

	dir := t.TempDir()
	good := writeTestFile(t, dir, "good.xml", testPalette("Dracula"))
	bad := writeTestFile(t, dir, "bad.xml", "<palette/>")

	var buf bytes.Buffer
	require.NoError(t, validateFiles(&buf, nil, validator, []string{good}))
	assert.Equal(t, good+": valid\n", buf.String())

	buf.Reset()
	require.NoError(t, validateFiles(&buf, strings.NewReader(testPalette("Nord")), validator, []string{"-"}))
	assert.Equal(t, "-: valid\n", buf.String())

	buf.Reset()
	err = validateFiles(&buf, nil, validator, []string{good, bad})
	require.ErrorIs(t, err, errInvalidThemes)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, buf.String(), bad+": invalid")
}

func TestRunImport_EndToEnd(t *testing.T) {
	confDir := t.TempDir()
	themeDir := t.TempDir()
	writeTestFile(t, confDir, "ConEmu.xml", testMaster)
	writeTestFile(t, themeDir, "dracula.xml", testPalette("Dracula"))
	writeTestFile(t, themeDir, "nord.xml", testPalette("Nord"))
	writeTestFile(t, themeDir, "broken.xml", "<key/>")

	useTestConfig(t, confDir, themeDir)

	require.NoError(t, runImport(rootCmd, nil))

	data, err := os.ReadFile(filepath.Join(confDir, "ConEmu.xml"))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `<key name="Colors"`)
	assert.Contains(t, out, `<key name="Palette1"`)
	assert.Contains(t, out, `<key name="Palette2"`)
	assert.Contains(t, out, `data="Dracula"`)
	assert.Contains(t, out, `data="Nord"`)
	assert.Contains(t, out, `build="190809"`)

	// A second run finds only duplicates and leaves the palettes alone.
	require.NoError(t, runImport(rootCmd, nil))
	again, err := os.ReadFile(filepath.Join(confDir, "ConEmu.xml"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(again), `data="Dracula"`))
	assert.NotContains(t, string(again), `<key name="Palette3"`)

	// Listing goes through the plain formatter.
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootOpts = rootOptions{list: true}
	require.NoError(t, runImport(rootCmd, nil))
	assert.Contains(t, buf.String(), "\tDracula")
	assert.Contains(t, buf.String(), "\tNord")
}

func TestRunImport_ListUsesOutputConfig(t *testing.T) {
	confDir := t.TempDir()
	themeDir := t.TempDir()
	writeTestFile(t, confDir, "ConEmu.xml", testMaster)
	writeTestFile(t, themeDir, "dracula.xml", testPalette("Dracula"))
	writeTestFile(t, themeDir, "nord.xml", testPalette("Nord"))

	useTestConfig(t, confDir, themeDir)
	require.NoError(t, runImport(rootCmd, nil))

	cfg.Output = config.OutputConfig{Format: "names", Sort: "name", Order: "desc"}
	rootOpts = rootOptions{list: true}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, runImport(rootCmd, nil))
	assert.Equal(t, "Nord\nDracula\n", buf.String())
}

func TestConfigListOptions(t *testing.T) {
	opts := configListOptions(config.OutputConfig{Format: "swatch", Sort: "modified", Order: "desc"})
	assert.Equal(t, listOptions{format: "swatch", sortBy: "modified", sortOrder: "desc"}, opts)
}

func TestRunImport_MissingVanilla(t *testing.T) {
	confDir := t.TempDir()
	writeTestFile(t, confDir, "ConEmu.xml", `<key name="Software"/>`)
	useTestConfig(t, confDir, t.TempDir())

	err := runImport(rootCmd, nil)
	assert.Error(t, err)
}

func useTestConfig(t *testing.T, confDir, baseDir string) {
	t.Helper()
	prevCfg, prevLogger, prevOpts := cfg, logger, rootOpts
	t.Cleanup(func() {
		cfg, logger, rootOpts = prevCfg, prevLogger, prevOpts
	})

	cfg = config.DefaultConfig()
	cfg.ConEmu.ConfigDir = confDir
	cfg.Import.BaseDir = baseDir
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	rootOpts = rootOptions{}
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func names(themes []model.Theme) []string {
	out := make([]string, 0, len(themes))
	for _, t := range themes {
		out = append(out, t.Name)
	}
	return out
}
