package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. It is loaded once at startup and
// handed to constructors explicitly; nothing reads settings ambiently.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	DB         DBConfig         `mapstructure:"db"`
	Uploads    UploadConfig     `mapstructure:"uploads"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	TemplatesDir string `mapstructure:"templates_dir"`
}

type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

type UploadConfig struct {
	Dir string `mapstructure:"dir"`
}

type PaginationConfig struct {
	// Limit is the page size for every listing endpoint.
	Limit int `mapstructure:"limit"`
}

type CORSConfig struct {
	AllowOrigins string `mapstructure:"allow_origins"`
	AllowMethods string `mapstructure:"allow_methods"`
	AllowHeaders string `mapstructure:"allow_headers"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Load reads configuration from an optional config file and RESELL_*
// environment variables, falling back to defaults suitable for local runs.
func Load() (Config, error) {
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("server.templates_dir", "./web/templates")
	viper.SetDefault("db.dsn", "resellit.db")
	viper.SetDefault("uploads.dir", "static/uploads")
	viper.SetDefault("pagination.limit", 10)
	viper.SetDefault("cors.allow_origins", "*")
	viper.SetDefault("cors.allow_methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	viper.SetDefault("cors.allow_headers", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		// No config file; defaults and env vars apply.
	}

	viper.SetEnvPrefix("RESELL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
