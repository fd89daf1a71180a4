package container

import (
	"tamperscope/config"
	app "tamperscope/internal/application"
	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
	"tamperscope/internal/infrastructure/storage"
	"tamperscope/internal/infrastructure/vision"
)

type Container struct {
	UserService   *app.UserService
	ReportService *app.ReportService
}

// New собирает кодек, анализаторы и сборщик отчёта в сервисы приложения.
// Порядок анализаторов задаёт порядок панелей в сетке после оригинала.
func New(cfg *config.Config) *Container {
	codec := storage.NewFileImageCodec(cfg.BaselineQuality)

	analyzers := []port.Analyzer{
		vision.NewELAAnalyzer(),
		vision.NewGaborAnalyzer(cfg.GaborFrequency),
		vision.NewEdgeAnalyzer(),
		vision.NewFrequencyAnalyzer(),
		vision.NewTextureAnalyzer(),
	}

	composer := vision.NewReportComposer(entity.GridLayout{Rows: 2, Cols: 3})

	userRepo := storage.NewMemoryUserRepository()
	userService := app.NewUserService(userRepo)
	reportService := app.NewReportService(codec, analyzers, composer, cfg.ReportPath)

	return &Container{
		UserService:   userService,
		ReportService: reportService,
	}
}
