package inbound

import (
	"context"
	"io"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/usecase"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgrouter"
)

type uc interface {
	ValidateUpload(ctx context.Context, name string, r io.Reader, policy entity.Policy) (usecase.ValidateResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/validations", end.Validations) // ?policy=check|rename|keep_first
}
