package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the tool configuration loaded from config.toml.
type AppConfig struct {
	Data     DataConfig     `toml:"data"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// DataConfig locates input and output directories. Input workbooks for a
// commodity live under <base_dir>/<komoditas>/.
type DataConfig struct {
	BaseDir   string `toml:"base_dir"`
	OutputDir string `toml:"output_dir"`
}

// DefaultsConfig holds the prompt defaults.
type DefaultsConfig struct {
	KabCode     int    `toml:"kab_code"`
	TablePrefix string `toml:"table_prefix"`
}

// DefaultConfig is the configuration used when config.toml is absent.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Data: DataConfig{
			BaseDir:   "data",
			OutputDir: ".",
		},
		Defaults: DefaultsConfig{
			KabCode:     7205,
			TablePrefix: "4_54",
		},
	}
}

// GetExeDir returns the directory the executable lives in.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath is config.toml next to the executable.
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// Load reads the configuration from path. A missing file yields the
// defaults; a malformed file is an error. SUMKOM_BASE_DIR overrides the
// base directory either way.
func Load(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(config *AppConfig) {
	if v := os.Getenv("SUMKOM_BASE_DIR"); v != "" {
		config.Data.BaseDir = v
	}
}

// Save writes the configuration to path.
func Save(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
