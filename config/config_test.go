package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("REPORT_PATH", "")
	t.Setenv("BASELINE_JPEG_QUALITY", "")
	t.Setenv("GABOR_FREQUENCY", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "analysis_report.png", cfg.ReportPath)
	require.Equal(t, 90, cfg.BaselineQuality)
	require.Equal(t, 0.6, cfg.GaborFrequency)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.TelegramToken)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("REPORT_PATH", "out/report.png")
	t.Setenv("BASELINE_JPEG_QUALITY", "85")
	t.Setenv("GABOR_FREQUENCY", "0.4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.TelegramToken)
	require.Equal(t, "out/report.png", cfg.ReportPath)
	require.Equal(t, 85, cfg.BaselineQuality)
	require.Equal(t, 0.4, cfg.GaborFrequency)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("BASELINE_JPEG_QUALITY", "high")
	t.Setenv("GABOR_FREQUENCY", "often")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 90, cfg.BaselineQuality)
	require.Equal(t, 0.6, cfg.GaborFrequency)
}
