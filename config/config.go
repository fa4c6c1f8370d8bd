package config

import (
	"github.com/spf13/viper"
	"path"
	"strings"
	"time"
)

// Config ...
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Tiltify TiltifyConfig `mapstructure:"tiltify"`

	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds"`
}

// RefreshInterval ...
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// Load reads config.yml from the working directory, with TILTWATCH_*
// environment overrides
func Load() Config {
	return loadFromFile("config.yml")
}

// LoadTestConfig reads the test configuration at the repository root
func LoadTestConfig(rootDir string) Config {
	return loadFromFile(path.Join(rootDir, "config_test.yml"))
}

func loadFromFile(file string) Config {
	vip := viper.New()
	vip.SetConfigFile(file)
	vip.SetEnvPrefix("tiltwatch")
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	if err := vip.ReadInConfig(); err != nil {
		panic(err)
	}

	var conf Config
	if err := vip.Unmarshal(&conf); err != nil {
		panic(err)
	}
	return conf
}
