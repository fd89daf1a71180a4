package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"tamperscope/internal/domain/entity"
	"tamperscope/internal/domain/port"
)

// ReportService управляет конвейером построения отчёта анализа.
type ReportService struct {
	codec      port.ImageCodec
	analyzers  []port.Analyzer
	composer   port.Composer
	reportPath string
}

// NewReportService создаёт сервис построения отчётов.
func NewReportService(codec port.ImageCodec, analyzers []port.Analyzer, composer port.Composer, reportPath string) *ReportService {
	return &ReportService{
		codec:      codec,
		analyzers:  analyzers,
		composer:   composer,
		reportPath: reportPath,
	}
}

// ReportPath возвращает путь, по которому сохраняется отчёт.
func (s *ReportService) ReportPath() string {
	return s.reportPath
}

// GenerateFromFile строит отчёт для изображения на диске и сохраняет его.
// Возвращает путь сохранённого отчёта.
func (s *ReportService) GenerateFromFile(ctx context.Context, path string) (string, error) {
	img, err := s.codec.LoadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	report, err := s.generate(ctx, img)
	if err != nil {
		return "", err
	}

	if err := s.codec.SaveReport(ctx, report, s.reportPath); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return s.reportPath, nil
}

// GenerateFromBytes строит отчёт для изображения в памяти и возвращает PNG.
func (s *ReportService) GenerateFromBytes(ctx context.Context, data []byte) ([]byte, error) {
	img, err := s.codec.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	report, err := s.generate(ctx, img)
	if err != nil {
		return nil, err
	}

	return s.codec.EncodePNG(ctx, report)
}

// generate запускает анализаторы над независимыми копиями изображения
// и собирает их результаты в итоговую сетку. Сбой отдельного анализа
// не прерывает остальные: его панель заменяется заглушкой.
func (s *ReportService) generate(ctx context.Context, img entity.Image) (entity.Image, error) {
	results := make([]entity.Result, len(s.analyzers)+1)
	results[0] = entity.OK(entity.KindOriginal, img)

	var wg sync.WaitGroup
	for i, analyzer := range s.analyzers {
		wg.Add(1)
		go func(i int, analyzer port.Analyzer) {
			defer wg.Done()
			results[i+1] = analyzer.Analyze(ctx, img.Clone())
		}(i, analyzer)
	}
	wg.Wait()

	for _, result := range results {
		if !result.Available() {
			log.Warn().Str("analysis", string(result.Kind)).Err(result.Err).Msg("Analysis degraded to placeholder")
		}
	}

	return s.composer.Compose(ctx, results)
}
