package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.ConEmu.ConfigDir)
	assert.Equal(t, "ConEmu.xml", cfg.ConEmu.FileName)
	assert.False(t, cfg.Import.Backup)
	assert.Empty(t, cfg.Import.Schema)
	assert.Empty(t, cfg.Import.BaseDir)
	assert.Equal(t, "plain", cfg.Output.Format)
	assert.Equal(t, "id", cfg.Output.Sort)
	assert.Equal(t, "asc", cfg.Output.Order)
	assert.NotEmpty(t, cfg.Templates.Plain)
	assert.NotEmpty(t, cfg.Templates.Detailed)
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().ConEmu.FileName, cfg.ConEmu.FileName)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[conemu]
config_dir = "/srv/conemu"
file_name = "ConEmu-portable.xml"

[import]
backup = true
schema = "/etc/cetheme/palette.xsd"
base_dir = "/opt/themes"

[output]
format = "swatch"
sort = "name"
order = "desc"

[templates]
plain = "{{.Name}}"

[templates.custom]
short = "{{.Key}}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/conemu", cfg.ConEmu.ConfigDir)
	assert.Equal(t, "ConEmu-portable.xml", cfg.ConEmu.FileName)
	assert.True(t, cfg.Import.Backup)
	assert.Equal(t, "/etc/cetheme/palette.xsd", cfg.Import.Schema)
	assert.Equal(t, "/opt/themes", cfg.Import.BaseDir)
	assert.Equal(t, "swatch", cfg.Output.Format)
	assert.Equal(t, "name", cfg.Output.Sort)
	assert.Equal(t, "desc", cfg.Output.Order)
	assert.Equal(t, "{{.Name}}", cfg.Templates.Plain)
	assert.Equal(t, "{{.Key}}", cfg.Templates.Custom["short"])
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultDetailedTmpl, cfg.Templates.Detailed)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[conemu\nfile_name = "), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")

	cfg := DefaultConfig()
	cfg.ConEmu.ConfigDir = "/tmp/conemu"
	cfg.Import.Backup = true
	cfg.Templates.Custom["ids"] = "{{.ID}}"
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", "cetheme", "config.toml"), ConfigPath())
}

func TestMasterDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConEmu.ConfigDir = "/srv/conemu"

	dir, err := cfg.MasterDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/conemu", dir)
}

func TestMasterFileName(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "ConEmu.xml", cfg.MasterFileName())

	cfg.ConEmu.FileName = ""
	assert.Equal(t, DefaultFileName, cfg.MasterFileName())
}

func TestGetTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Templates.Custom["plain"] = "override"
	cfg.Templates.Custom["short"] = "{{.Key}}"

	assert.Equal(t, "override", cfg.GetTemplate("plain"))
	assert.Equal(t, "{{.Key}}", cfg.GetTemplate("short"))
	assert.Equal(t, DefaultDetailedTmpl, cfg.GetTemplate("detailed"))
	assert.Empty(t, cfg.GetTemplate("missing"))
}
