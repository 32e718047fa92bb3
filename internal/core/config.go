package core

import (
	"time"
)

type Config struct {
	Telegram TelegramConfig
	SongLink SongLinkConfig
	Server   ServerConfig
	Log      LogConfig
	App      AppConfig
}

type TelegramConfig struct {
	BotToken string
}

type SongLinkConfig struct {
	APIURL    string
	APIKey    string
	CacheSize int
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AppConfig struct {
	SkipMark string
}

const (
	// DefaultAPIURL is the public SongLink links endpoint.
	DefaultAPIURL = "https://api.song.link/v1-alpha.1/links"
	// DefaultSkipMark is the sentinel substring that makes the bot ignore a message.
	DefaultSkipMark = "!skip"
	// DefaultCacheSize bounds the in-memory lookup result cache.
	DefaultCacheSize = 1024
)

func DefaultConfig() *Config {
	return &Config{
		SongLink: SongLinkConfig{
			APIURL:    DefaultAPIURL,
			CacheSize: DefaultCacheSize,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		App: AppConfig{
			SkipMark: DefaultSkipMark,
		},
	}
}
