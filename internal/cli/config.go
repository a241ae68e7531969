package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "STOCKROOM"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyCatalogFile = "catalog_file"
	cfgKeyLogLevel    = "log.level"
	cfgKeyLogFormat   = "log.format"
	cfgKeyLogOutput   = "log.output"
	cfgKeyLogFilePath = "log.file_path"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend     string         `yaml:"backend"`
	DataDir     string         `yaml:"data_dir,omitempty"`
	CatalogFile string         `yaml:"catalog_file"`
	Log         logging.Config `yaml:"log"`
}

// defaultConfig is written to config.yaml on first run.
var defaultConfig = configFile{
	Backend:     types.BackendCSV,
	CatalogFile: types.DefaultCatalogFile,
	Log: logging.Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	},
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default config.yaml on first run. Keys other than data_dir
// can be overridden by STOCKROOM_* environment variables; data_dir follows
// the precedence in paths.ResolveDataDir instead.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create config dir: %w", types.ErrStorage, err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt)); err != nil {
		return nil, fmt.Errorf("%w: write default config: %w", types.ErrStorage, err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultConfig.Backend)
	v.SetDefault(cfgKeyCatalogFile, defaultConfig.CatalogFile)
	v.SetDefault(cfgKeyLogLevel, defaultConfig.Log.Level)
	v.SetDefault(cfgKeyLogFormat, defaultConfig.Log.Format)
	v.SetDefault(cfgKeyLogOutput, defaultConfig.Log.Output)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		cfgKeyBackend, cfgKeyCatalogFile,
		cfgKeyLogLevel, cfgKeyLogFormat, cfgKeyLogOutput, cfgKeyLogFilePath,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// logConfig extracts the log.* settings.
func logConfig(v *viper.Viper) logging.Config {
	return logging.Config{
		Level:    v.GetString(cfgKeyLogLevel),
		Format:   v.GetString(cfgKeyLogFormat),
		Output:   v.GetString(cfgKeyLogOutput),
		FilePath: v.GetString(cfgKeyLogFilePath),
	}
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
