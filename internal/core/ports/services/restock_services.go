package services

import (
	"context"

	"github.com/posledger/pos_ledger_app/internal/dto"
)

// RestockSvcFacade orchestrates bulk restocking: expand templates, allocate
// costs, commit one batch. It also manages the templates themselves.
type RestockSvcFacade interface {
	ProcessRestock(ctx context.Context, req dto.CreateRestockRequest, actorID string) (*dto.RestockResponse, error)

	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, actorID string) (*dto.TemplateResponse, error)
	GetTemplate(ctx context.Context, templateID string) (*dto.TemplateResponse, error)
	ListTemplates(ctx context.Context, limit int, offset int) ([]dto.TemplateResponse, error)
}
