package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Market   MarketConfig   `mapstructure:"market"`
	Player   PlayerConfig   `mapstructure:"player"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type MarketConfig struct {
	// ItemSource is a local JSON file path or an http(s) URL.
	ItemSource string        `mapstructure:"item_source"`
	Interval   time.Duration `mapstructure:"interval"`
	Spread     float64       `mapstructure:"spread"`
}

type PlayerConfig struct {
	StartingGold int `mapstructure:"starting_gold"`
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.path", "fantasy_merchant.db")
	viper.SetDefault("market.item_source", "./fantasy_items.json")
	viper.SetDefault("market.interval", time.Minute)
	viper.SetDefault("market.spread", 0.2)
	viper.SetDefault("player.starting_gold", 1000)
	viper.SetDefault("session.secret", "your-secret-key")
	viper.SetDefault("session.ttl", 30*time.Minute)
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv()

	var config Config

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, defaults and env vars cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
