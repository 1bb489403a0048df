package config

import "os"

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ApplyEnvOverrides применяет переменные окружения поверх конфига (env переопределяет YAML)
func ApplyEnvOverrides(cfg *YamlConfig) {
	if v := getEnv("KM_RUNTIME", ""); v != "" {
		cfg.Runtime.Exe = v
	}
	if v := getEnv("KM_PIP", ""); v != "" {
		cfg.Runtime.Pip = v
	}
	if v := getEnv("KM_PROBE_PACKAGE", ""); v != "" {
		cfg.Runtime.ProbePackage = v
	}
	if v := getEnv("KM_MANIFEST", ""); v != "" {
		cfg.Runtime.Manifest = v
	}
	if v := getEnv("KM_ENTRY_POINT", ""); v != "" {
		cfg.Runtime.EntryPoint = v
	}

	if v := getEnv("KM_PROJECTS_DIR", ""); v != "" {
		cfg.Paths.ProjectsDir = v
	}
	if v := getEnv("KM_TEMPLATES_DIR", ""); v != "" {
		cfg.Paths.TemplatesDir = v
	}
	if v := getEnv("KM_COM_CACHE_DIR", ""); v != "" {
		cfg.Paths.ComCacheDir = v
	}

	if v := getEnv("KM_DESIGNATION_PREFIX", ""); v != "" {
		cfg.Designation.Prefix = v
	}
	if v := getEnv("KM_PRODUCT", ""); v != "" {
		cfg.Designation.Product = v
	}

	if v := getEnv("KM_LOG_LEVEL", ""); v != "" {
		cfg.Logging.Level = v
	}
	if v := getEnv("KM_LOG_FORMAT", ""); v != "" {
		cfg.Logging.Format = v
	}
}

// LoadConfigFromEnv собирает конфиг только из переменных окружения (для работы без YAML)
func LoadConfigFromEnv() *YamlConfig {
	cfg := GetDefaultYamlConfig()
	ApplyEnvOverrides(cfg)
	return cfg
}
