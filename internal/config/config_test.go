package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YamlWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
runtime:
  exe: python3
  probe_package: customtkinter
paths:
  templates_dir: /opt/templates
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("KM_RUNTIME", "py")
	t.Setenv("KM_PRODUCT", "TURBO")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// env поверх YAML
	require.Equal(t, "py", cfg.Runtime.Exe)
	require.Equal(t, "TURBO", cfg.Designation.Product)
	// YAML без переопределения
	require.Equal(t, "/opt/templates", cfg.Paths.TemplatesDir)
	require.Equal(t, "customtkinter", cfg.Runtime.ProbePackage)
}

func TestLoadConfig_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("KM_ENTRY_POINT", "main.py")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "нет.yaml"))
	require.NoError(t, err)

	require.Equal(t, "main.py", cfg.Runtime.EntryPoint)
	// остальное — значения по умолчанию
	require.Equal(t, "python", cfg.Runtime.Exe)
	require.Equal(t, "requirements.txt", cfg.Runtime.Manifest)
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	require.Equal(t, "python", cfg.Runtime.Exe)
	require.Equal(t, "pip", cfg.Runtime.Pip)
	require.Equal(t, "customtkinter", cfg.Runtime.ProbePackage)
	require.Equal(t, "gui_kompas_manager.py", cfg.Runtime.EntryPoint)
	require.Equal(t, "ZVD", cfg.Designation.Prefix)
}
