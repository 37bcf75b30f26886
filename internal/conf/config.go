// config.go: settings struct and functions to load and save the solerack configuration.
package conf

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/solerack/solerack/internal/errors"
)

// LogConfig contains settings for application file logging.
type LogConfig struct {
	Enabled bool   // true to enable file logging
	Path    string // path to log file
}

// MainSettings contains general application settings.
type MainSettings struct {
	Name string    // name of this node, used in log messages
	Log  LogConfig // file logging settings
}

// ImportSettings contains settings for the auto-import pipeline.
type ImportSettings struct {
	Enabled             bool          // true to enable automatic ingestion
	DropDir             string        // watched directory for incoming images
	UploadDir           string        // destination directory for listing images
	Interval            time.Duration // periodic scan backstop interval
	Settle              time.Duration // quiet period after a file change before scanning
	BatchSize           int           // groups processed per batch on bulk drops
	BatchPause          time.Duration // pause between batches
	SimilarityThreshold float64       // weighted match score required to append to an existing listing
	MinImages           int           // minimum images per candidate group
	LedgerPath          string        // path to the processed-files ledger
	DefaultMSRP         int           // fallback MSRP when no estimate is available
	DefaultPrice        int           // fallback selling price
}

// SQLiteSettings contains settings for the SQLite database backend.
type SQLiteSettings struct {
	Enabled bool
	Path    string
}

// MySQLSettings contains settings for the MySQL database backend.
type MySQLSettings struct {
	Enabled  bool
	Username string
	Password string
	Database string
	Host     string
	Port     string
}

// OutputSettings groups the available database backends.
type OutputSettings struct {
	SQLite SQLiteSettings
	MySQL  MySQLSettings
}

// TelemetrySettings contains settings for the Prometheus telemetry endpoint.
type TelemetrySettings struct {
	Enabled bool   // true to expose /metrics and /healthz
	Listen  string // listen address and port
}

// Settings is the root configuration struct.
type Settings struct {
	Debug     bool
	Version   string `yaml:"-"` // build version, set at build time
	Main      MainSettings
	Import    ImportSettings
	Output    OutputSettings
	Telemetry TelemetrySettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config file, run on defaults
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// ValidateSettings checks the loaded settings for obviously broken values.
func ValidateSettings(settings *Settings) error {
	imp := &settings.Import

	if imp.SimilarityThreshold < 0 || imp.SimilarityThreshold > 1 {
		return errors.Newf("import.similaritythreshold must be between 0 and 1, got %v", imp.SimilarityThreshold).
			Category(errors.CategoryConfiguration).
			Context("setting", "import.similaritythreshold").
			Build()
	}
	if imp.BatchSize < 1 {
		return errors.Newf("import.batchsize must be at least 1, got %d", imp.BatchSize).
			Category(errors.CategoryConfiguration).
			Context("setting", "import.batchsize").
			Build()
	}
	if imp.Interval <= 0 || imp.Settle <= 0 {
		return errors.Newf("import.interval and import.settle must be positive").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if imp.MinImages < 1 {
		return errors.Newf("import.minimages must be at least 1, got %d", imp.MinImages).
			Category(errors.CategoryConfiguration).
			Context("setting", "import.minimages").
			Build()
	}
	if imp.DropDir == "" || imp.UploadDir == "" {
		return errors.Newf("import.dropdir and import.uploaddir must be set").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return nil
}

// Setting returns the current settings instance, initializing it if necessary.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// GetDefaultConfigPaths returns the default configuration paths for the
// current operating system. If a config.yaml file is found in any of the
// paths, only that path is returned.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case "windows":
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "solerack"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "solerack"),
			"/etc/solerack",
			exeDir,
		}
	}

	for _, path := range configPaths {
		configFile := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			return []string{path}, nil
		}
	}

	return configPaths, nil
}

// SaveYAMLConfig writes the settings to the given path. The write goes
// through a temp file and rename so a crash never leaves a half-written
// config behind.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary config file: %w", err)
	}
	tempName := tempFile.Name()

	if _, err := tempFile.Write(yamlData); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return fmt.Errorf("error writing temporary config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("error closing temporary config file: %w", err)
	}

	if err := os.Rename(tempName, configPath); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}
