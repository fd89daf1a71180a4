package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tamperscope/config"
	telegram "tamperscope/internal/api"
	"tamperscope/internal/container"
)

var rootCmd = &cobra.Command{
	Use:   "tamperscope <image_path>",
	Short: "Generate a tamper-analysis report for a single image",
	Long: `Runs five forensic analyses (ELA, Gabor texture, adaptive edges,
frequency/wavelet spectrum, local binary patterns) over an image and saves
a tiled, annotated report as a lossless PNG.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()
		c := container.New(cfg)

		log.Info().Str("image", args[0]).Msg("Reading image")

		path, err := c.ReportService.GenerateFromFile(context.Background(), args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Report generation failed")
		}

		log.Info().Str("report", path).Msg("Analysis complete")
	},
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot delivery surface",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setup()

		if cfg.TelegramToken == "" {
			log.Fatal().Msg("TELEGRAM_TOKEN is required")
		}

		c := container.New(cfg)

		bot, err := telegram.NewBot(cfg.TelegramToken, c.UserService, c.ReportService)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create bot")
		}

		log.Info().Msg("Bot is running...")
		if err := bot.Run(); err != nil {
			log.Fatal().Err(err).Msg("Bot error")
		}
	},
}

// setup загружает конфигурацию и настраивает глобальный логгер.
func setup() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)
	return cfg
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
