package core

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SongLink.APIURL != "https://api.song.link/v1-alpha.1/links" {
		t.Errorf("SongLink.APIURL = %q, want the public links endpoint", cfg.SongLink.APIURL)
	}
	if cfg.SongLink.APIKey != "" {
		t.Errorf("SongLink.APIKey = %q, want empty", cfg.SongLink.APIKey)
	}
	if cfg.SongLink.CacheSize != DefaultCacheSize {
		t.Errorf("SongLink.CacheSize = %d, want %d", cfg.SongLink.CacheSize, DefaultCacheSize)
	}

	if cfg.App.SkipMark != "!skip" {
		t.Errorf("App.SkipMark = %q, want %q", cfg.App.SkipMark, "!skip")
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("Server addr = %s:%d, want 0.0.0.0:8080", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second || cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("Server timeouts = %v/%v, want 10s/10s",
			cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log config = %s/%s, want info/json", cfg.Log.Level, cfg.Log.Format)
	}

	if cfg.Telegram.BotToken != "" {
		t.Errorf("Telegram.BotToken = %q, want empty", cfg.Telegram.BotToken)
	}
}
