// Package main provides the SongLink bot CLI application entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"songlinkbot/internal/chat/telegram"
	"songlinkbot/internal/core"
	httpserver "songlinkbot/internal/http"
	"songlinkbot/internal/songlink"
)

const cacheGaugeInterval = time.Minute

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "songlinkbot",
	Short: "SongLink Bot - cross-platform music links for Telegram chats",
	Long: `SongLink Bot watches Telegram messages for links to music streaming
platforms and replies with equivalent links across all supported platforms,
powered by the SongLink aggregation API.`,
	RunE: runBot,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("bot-token", "", "Telegram bot API token")
	rootCmd.PersistentFlags().String("songlink-api-url", core.DefaultAPIURL, "SongLink API URL")
	rootCmd.PersistentFlags().String("songlink-api-key", "", "SongLink API key (optional)")
	rootCmd.PersistentFlags().String("skip-mark", core.DefaultSkipMark, "substring that makes the bot ignore a message")
	rootCmd.PersistentFlags().Int("cache-size", core.DefaultCacheSize, "lookup result cache size (0 disables)")
	rootCmd.PersistentFlags().String("server-host", "0.0.0.0", "HTTP server host")
	rootCmd.PersistentFlags().Int("server-port", 8080, "HTTP server port")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
	}

	viper.SetEnvPrefix("SONGLINKBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}

	config = buildConfig()
	logger = buildLogger(config.Log.Level)
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	cfg.Telegram.BotToken = viper.GetString("bot-token")

	cfg.SongLink.APIURL = viper.GetString("songlink-api-url")
	if cfg.SongLink.APIURL == "" {
		cfg.SongLink.APIURL = core.DefaultAPIURL
	}
	cfg.SongLink.APIKey = viper.GetString("songlink-api-key")
	cfg.SongLink.CacheSize = viper.GetInt("cache-size")

	cfg.App.SkipMark = viper.GetString("skip-mark")
	if cfg.App.SkipMark == "" {
		cfg.App.SkipMark = core.DefaultSkipMark
	}

	cfg.Server.Host = viper.GetString("server-host")
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	cfg.Server.Port = viper.GetInt("server-port")

	cfg.Log.Level = viper.GetString("log-level")

	return cfg
}

func buildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	builtLogger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to build logger: %v", err))
	}

	return builtLogger
}

func runBot(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting SongLink bot",
		zap.String("songlink_api_url", config.SongLink.APIURL))

	if err := validateConfig(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	frontend := telegram.NewFrontend(&telegram.Config{
		BotToken: config.Telegram.BotToken,
	}, logger.Named("telegram"))

	songlinkClient, err := songlink.NewClient(&config.SongLink, logger.Named("songlink"))
	if err != nil {
		return fmt.Errorf("failed to create songlink client: %w", err)
	}

	httpServer := httpserver.NewServer(&config.Server, logger.Named("http"))

	dispatcher := core.NewDispatcher(
		config,
		frontend,
		songlinkClient,
		httpServer,
		logger.Named("dispatcher"),
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return httpServer.Start(gCtx)
	})

	g.Go(func() error {
		return dispatcher.Start(gCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cacheGaugeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				httpServer.SetCacheSize(songlinkClient.CacheLen())
			}
		}
	})

	logger.Info("SongLink bot started successfully",
		zap.String("http_addr", fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)))

	if err := g.Wait(); err != nil {
		logger.Error("SongLink bot stopped with error", zap.Error(err))
		return err
	}

	logger.Info("SongLink bot stopped gracefully")
	return nil
}

func validateConfig() error {
	if config.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required")
	}

	if config.SongLink.APIURL == "" {
		return fmt.Errorf("songlink API URL is required")
	}

	return nil
}
