package in

import (
	"context"

	"leadclip/internal/modules/capture/dto"
)

type Usecase interface {
	// Watch polls the clipboard until the context ends.
	Watch(ctx context.Context) error

	// HandleCopy feeds one capture through classification and the
	// popup lifecycle.
	HandleCopy(ctx context.Context, input dto.CopyInput) error
}
