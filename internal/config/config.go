package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/askdeck/askdeck/internal/util"
)

// Config carries everything the client needs from the environment: where
// the assistant lives, where history is kept, and who the user is. Values
// come from config.yaml under the app config dir, then .env, then process
// env vars; later sources win.
type Config struct {
	APIURL         string        `yaml:"api_url"`
	RequestTimeout time.Duration `yaml:"-"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`

	StorageDir  string `yaml:"storage_dir"`
	LogFile     string `yaml:"log_file"`
	VoiceURL    string `yaml:"voice_url"`
	UserEmail   string `yaml:"user_email"`
	AccessToken string `yaml:"-"`
}

const (
	defaultAPIURL         = "http://localhost:8000"
	defaultTimeoutSeconds = 60
)

// Load builds the effective configuration. A missing config file or .env is
// not an error.
func Load() (*Config, error) {
	cfg := &Config{
		APIURL:         defaultAPIURL,
		TimeoutSeconds: defaultTimeoutSeconds,
	}

	configDir, err := util.GetDefaultConfigDir()
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(filepath.Join(configDir, "config.yaml")); err != nil {
		return nil, err
	}

	// .env in the working directory, if present.
	_ = godotenv.Load()

	cfg.applyEnv()

	if cfg.StorageDir == "" {
		cfg.StorageDir = filepath.Join(configDir, "storage")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(configDir, "askdeck.log")
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	cfg.RequestTimeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	return cfg, nil
}

func (o *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, o)
}

func (o *Config) applyEnv() {
	if v := os.Getenv("ASKDECK_API_URL"); v != "" {
		o.APIURL = v
	}
	if v := os.Getenv("ASKDECK_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			o.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("ASKDECK_STORAGE_DIR"); v != "" {
		o.StorageDir = v
	}
	if v := os.Getenv("ASKDECK_LOG_FILE"); v != "" {
		o.LogFile = v
	}
	if v := os.Getenv("ASKDECK_VOICE_URL"); v != "" {
		o.VoiceURL = v
	}
	if v := os.Getenv("ASKDECK_USER_EMAIL"); v != "" {
		o.UserEmail = v
	}
	if v := os.Getenv("ASKDECK_ACCESS_TOKEN"); v != "" {
		o.AccessToken = v
	}
}
