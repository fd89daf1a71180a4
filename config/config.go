package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config собирает настройки процесса из окружения.
type Config struct {
	TelegramToken   string  // токен бота; нужен только команде bot
	ReportPath      string  // путь сохранения итогового отчёта
	BaselineQuality int     // качество промежуточного JPEG для PNG-источников
	GaborFrequency  float64 // частота полосы фильтра Габора
	LogLevel        string  // уровень логирования zerolog
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		ReportPath:      getEnv("REPORT_PATH", "analysis_report.png"),
		BaselineQuality: getEnvAsInt("BASELINE_JPEG_QUALITY", 90),
		GaborFrequency:  getEnvAsFloat("GABOR_FREQUENCY", 0.6),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
