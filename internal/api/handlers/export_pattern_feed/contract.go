package export_pattern_feed

import (
	"context"

	exportPatternFeed "github.com/m04kA/SMC-ScheduleService/internal/usecase/export_pattern_feed"
)

// ExportPatternFeedUseCase - юзкейс выгрузки серии занятий в iCalendar-фид
type ExportPatternFeedUseCase interface {
	Execute(ctx context.Context, req *exportPatternFeed.Request) (*exportPatternFeed.Response, error)
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}
