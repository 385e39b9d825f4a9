package register_media

import (
	"context"

	registerMedia "github.com/nordeim/Elderly-Care-Center/internal/usecase/register_media"
)

type RegisterMediaUseCase interface {
	Execute(ctx context.Context, req *registerMedia.Request) (*registerMedia.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
