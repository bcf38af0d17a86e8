// Package config loads daemon configuration from a YAML file and
// environment variables. Priority: ENV > YAML > defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full daemon configuration.
type Config struct {
	DataDir  string         `yaml:"data_dir" env:"DOORMON_DATA_DIR" env-default:"/var/lib/door-monitor"`
	GPIO     GPIOConfig     `yaml:"gpio"`
	Rollover RolloverConfig `yaml:"rollover"`
	Remote   RemoteConfig   `yaml:"remote"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// GPIOConfig describes the reed switch wiring.
type GPIOConfig struct {
	Chip            string `yaml:"chip" env:"DOORMON_GPIO_CHIP" env-default:"gpiochip0"`
	Pin             int    `yaml:"pin" env:"DOORMON_GPIO_PIN" env-default:"21"`
	ActiveLow       bool   `yaml:"active_low" env:"DOORMON_GPIO_ACTIVE_LOW" env-default:"false"`
	DebounceSeconds int    `yaml:"debounce_seconds" env:"DOORMON_DEBOUNCE_SECONDS" env-default:"1"`
}

// Debounce returns the hardware debounce period.
func (g GPIOConfig) Debounce() time.Duration {
	return time.Duration(g.DebounceSeconds) * time.Second
}

// RolloverConfig pins the daily rollover to a wall-clock time in a fixed
// timezone. The default of 00:01 is safely past midnight so "today" is
// unambiguous when the trigger fires.
type RolloverConfig struct {
	Timezone string `yaml:"timezone" env:"DOORMON_TIMEZONE" env-default:"Europe/Helsinki"`
	Hour     int    `yaml:"hour" env:"DOORMON_ROLLOVER_HOUR" env-default:"0"`
	Minute   int    `yaml:"minute" env:"DOORMON_ROLLOVER_MINUTE" env-default:"1"`
}

// Location resolves the configured timezone.
func (r RolloverConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// CronSpec returns the daily trigger in cron syntax.
func (r RolloverConfig) CronSpec() string {
	return fmt.Sprintf("%d %d * * *", r.Minute, r.Hour)
}

// At returns the trigger time as "HH:MM" for display.
func (r RolloverConfig) At() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// RemoteConfig describes the Firestore project the daemon syncs to.
type RemoteConfig struct {
	ProjectID       string `yaml:"project_id" env:"DOORMON_REMOTE_PROJECT"`
	CredentialsFile string `yaml:"credentials_file" env:"DOORMON_REMOTE_CREDENTIALS"`
	Collection      string `yaml:"collection" env:"DOORMON_REMOTE_COLLECTION" env-default:"door_data"`
}

// MQTTConfig describes the optional MQTT fan-out. Empty broker disables it.
type MQTTConfig struct {
	Broker string `yaml:"broker" env:"DOORMON_MQTT_BROKER"`
}

// HTTPConfig describes the optional status page. Empty addr disables it.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"DOORMON_HTTP_ADDR" env-default:":8080"`
}

// Load reads configuration from path. If path is empty, CONFIG_PATH is
// consulted, falling back to ./config.yaml; a missing default file means
// configuration comes from ENV + defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("CONFIG_PATH")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations the daemon cannot run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.GPIO.DebounceSeconds < 1 {
		return fmt.Errorf("gpio.debounce_seconds must be >= 1, got %d", c.GPIO.DebounceSeconds)
	}
	if c.Rollover.Hour < 0 || c.Rollover.Hour > 23 {
		return fmt.Errorf("rollover.hour out of range: %d", c.Rollover.Hour)
	}
	if c.Rollover.Minute < 0 || c.Rollover.Minute > 59 {
		return fmt.Errorf("rollover.minute out of range: %d", c.Rollover.Minute)
	}
	if _, err := c.Rollover.Location(); err != nil {
		return err
	}
	if c.Remote.ProjectID == "" {
		return fmt.Errorf("remote.project_id is required")
	}
	return nil
}
