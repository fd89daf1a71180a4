package port

import (
	"context"

	"tamperscope/internal/domain/entity"
)

// Composer интерфейс сборщика итогового отчёта
type Composer interface {
	// Compose подменяет недоступные результаты заглушками, приводит панели
	// к общему размеру, подписывает их и склеивает в сетку отчёта
	Compose(ctx context.Context, results []entity.Result) (entity.Image, error)
}
