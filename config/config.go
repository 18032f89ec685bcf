package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SystemConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	Secret        string `yaml:"secret" json:"secret"`
	SessionMaxAge int    `yaml:"session_max_age" json:"session_max_age"`
	MaxUploadMB   int    `yaml:"max_upload_mb" json:"max_upload_mb"`
}

type CatalogConfig struct {
	// DatasetsDir holds one tabular file per store.
	DatasetsDir string `yaml:"datasets_dir" json:"datasets_dir"`
	Currency    string `yaml:"currency" json:"currency"`
}

type ClassifierConfig struct {
	// Endpoint of the external inference service. Empty disables
	// classification and searches degrade to keyword matching.
	Endpoint   string `yaml:"endpoint" json:"endpoint"`
	TimeoutSec int    `yaml:"timeout_sec" json:"timeout_sec"`
	Workers    int    `yaml:"workers" json:"workers"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type MonitorConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type AppConfig struct {
	System     SystemConfig     `yaml:"system" json:"system"`
	Web        WebConfig        `yaml:"web" json:"web"`
	Catalog    CatalogConfig    `yaml:"catalog" json:"catalog"`
	Classifier ClassifierConfig `yaml:"classifier" json:"classifier"`
	Logger     LoggerConfig     `yaml:"logger" json:"logger"`
	Monitor    MonitorConfig    `yaml:"monitor" json:"monitor"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Appid:    "shoplens",
			Location: "Asia/Kolkata",
			Workdir:  "/var/shoplens",
			Debug:    false,
		},
		Web: WebConfig{
			Host:          "0.0.0.0",
			Port:          5000,
			Secret:        "",
			SessionMaxAge: 86400,
			MaxUploadMB:   16,
		},
		Catalog: CatalogConfig{
			DatasetsDir: "datasets",
			Currency:    "₹",
		},
		Classifier: ClassifierConfig{
			Endpoint:   "",
			TimeoutSec: 15,
			Workers:    4,
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/shoplens/shoplens.log",
		},
		Monitor: MonitorConfig{Enabled: true},
	}
}

// LoadConfig reads the yaml config file if present and applies environment
// overrides on top of the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}
	setEnvString(&cfg.System.Workdir, "SHOPLENS_WORKDIR")
	setEnvString(&cfg.Web.Host, "SHOPLENS_WEB_HOST")
	setEnvString(&cfg.Web.Secret, "SHOPLENS_WEB_SECRET")
	setEnvString(&cfg.Catalog.DatasetsDir, "SHOPLENS_DATASETS_DIR")
	setEnvString(&cfg.Classifier.Endpoint, "SHOPLENS_CLASSIFIER_ENDPOINT")
	setEnvString(&cfg.Logger.Mode, "SHOPLENS_LOGGER_MODE")
	return cfg
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// UsersFile is the durable identity store location.
func (c *AppConfig) UsersFile() string {
	return filepath.Join(c.System.Workdir, "users.json")
}

// LogsFile is the durable activity journal location.
func (c *AppConfig) LogsFile() string {
	return filepath.Join(c.System.Workdir, "logs.json")
}

// UploadDir stores user-submitted product images.
func (c *AppConfig) UploadDir() string {
	return filepath.Join(c.System.Workdir, "uploads")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0o755)
	_ = os.MkdirAll(c.Catalog.DatasetsDir, 0o755)
	_ = os.MkdirAll(c.UploadDir(), 0o755)
}
