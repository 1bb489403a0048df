package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zvd-group/kompas-manager/pkg/constants"
)

// YamlConfig представляет конфигурацию приложения из YAML
type YamlConfig struct {
	Runtime struct {
		Exe          string `yaml:"exe"`
		Pip          string `yaml:"pip"`
		ProbePackage string `yaml:"probe_package"`
		Manifest     string `yaml:"manifest"`
		EntryPoint   string `yaml:"entry_point"`
	} `yaml:"runtime"`

	Paths struct {
		ProjectsDir  string `yaml:"projects_dir"`
		TemplatesDir string `yaml:"templates_dir"`
		ComCacheDir  string `yaml:"com_cache_dir"`
	} `yaml:"paths"`

	Designation struct {
		Prefix  string `yaml:"prefix"`
		Product string `yaml:"product"`
	} `yaml:"designation"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadYamlConfig загружает конфигурацию из YAML файла
func LoadYamlConfig(path string) (*YamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg YamlConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetDefaultYamlConfig возвращает конфигурацию по умолчанию
// (значения исходного окружения: python + customtkinter + requirements.txt)
func GetDefaultYamlConfig() *YamlConfig {
	cfg := &YamlConfig{}
	cfg.Runtime.Exe = constants.DefaultRuntime
	cfg.Runtime.Pip = constants.DefaultPip
	cfg.Runtime.ProbePackage = constants.ProbePackage
	cfg.Runtime.Manifest = constants.PathManifest
	cfg.Runtime.EntryPoint = constants.PathEntryPoint
	cfg.Paths.ProjectsDir = "."
	cfg.Paths.TemplatesDir = constants.PathTemplates
	cfg.Paths.ComCacheDir = ""
	cfg.Designation.Prefix = constants.DesignationPrefix
	cfg.Designation.Product = constants.ProductLite
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	return cfg
}
