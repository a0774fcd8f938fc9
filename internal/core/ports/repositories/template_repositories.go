package repositories

import (
	"context"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// TemplateRepositoryFacade persists restock templates and their typed
// compositions (template row plus ordered component rows, saved atomically).
type TemplateRepositoryFacade interface {
	SaveTemplate(ctx context.Context, template domain.RestockTemplate) error
	FindTemplateByID(ctx context.Context, templateID string) (*domain.RestockTemplate, error)
	FindTemplatesByIDs(ctx context.Context, templateIDs []string) (map[string]domain.RestockTemplate, error)
	ListTemplates(ctx context.Context, limit int, offset int) ([]domain.RestockTemplate, error)
}
