package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	"github.com/posledger/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
)

const templateColumns = `template_id, name, declared_aggregate_cost, created_at, created_by, last_updated_at, last_updated_by`

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for restock templates.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTemplateRepository implements portsrepo.TemplateRepositoryFacade
var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

// SaveTemplate persists the template row and its ordered components in one
// transaction.
func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.RestockTemplate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	templateQuery := `
		INSERT INTO restock_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, templateQuery,
		template.TemplateID,
		template.Name,
		template.DeclaredAggregateCost,
		template.CreatedAt,
		template.CreatedBy,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError("failed to save template "+template.TemplateID, err)
	}

	componentQuery := `
		INSERT INTO restock_template_components (template_id, product_id, weight, position)
		VALUES ($1, $2, $3, $4);
	`
	batch := &pgx.Batch{}
	for _, c := range template.Components {
		batch.Queue(componentQuery, template.TemplateID, c.ProductID, c.Weight, c.Position)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapPgError("failed to save components for template "+template.TemplateID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTemplateByID retrieves a template with its components.
func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.RestockTemplate, error) {
	templates, err := r.FindTemplatesByIDs(ctx, []string{templateID})
	if err != nil {
		return nil, err
	}
	template, ok := templates[templateID]
	if !ok {
		return nil, fmt.Errorf("%w: template %s", apperrors.ErrNotFound, templateID)
	}
	return &template, nil
}

// FindTemplatesByIDs retrieves multiple templates, components included. IDs
// without a matching row are absent from the map.
func (r *PgxTemplateRepository) FindTemplatesByIDs(ctx context.Context, templateIDs []string) (map[string]domain.RestockTemplate, error) {
	if len(templateIDs) == 0 {
		return map[string]domain.RestockTemplate{}, nil
	}

	query := `SELECT ` + templateColumns + ` FROM restock_templates WHERE template_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, templateIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates by IDs: %w", err)
	}

	templatesMap := make(map[string]domain.RestockTemplate)
	for rows.Next() {
		var t domain.RestockTemplate
		err := rows.Scan(
			&t.TemplateID,
			&t.Name,
			&t.DeclaredAggregateCost,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templatesMap[t.TemplateID] = t
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	if len(templatesMap) == 0 {
		return templatesMap, nil
	}

	if err := r.attachComponents(ctx, templatesMap); err != nil {
		return nil, err
	}
	return templatesMap, nil
}

func (r *PgxTemplateRepository) attachComponents(ctx context.Context, templatesMap map[string]domain.RestockTemplate) error {
	ids := make([]string, 0, len(templatesMap))
	for id := range templatesMap {
		ids = append(ids, id)
	}

	query := `
		SELECT template_id, product_id, weight, position
		FROM restock_template_components
		WHERE template_id = ANY($1)
		ORDER BY template_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query template components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var templateID string
		var c domain.TemplateComponent
		if err := rows.Scan(&templateID, &c.ProductID, &c.Weight, &c.Position); err != nil {
			return fmt.Errorf("failed to scan template component row: %w", err)
		}
		t := templatesMap[templateID]
		t.Components = append(t.Components, c)
		templatesMap[templateID] = t
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating template component rows: %w", err)
	}
	return nil
}

// ListTemplates retrieves a paginated list of templates, newest first,
// components included.
func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, limit int, offset int) ([]domain.RestockTemplate, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT template_id FROM restock_templates ORDER BY created_at DESC, template_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan template id during list: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template ids during list: %w", err)
	}

	templatesMap, err := r.FindTemplatesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	templates := make([]domain.RestockTemplate, 0, len(ids))
	for _, id := range ids {
		if t, ok := templatesMap[id]; ok {
			templates = append(templates, t)
		}
	}
	return templates, nil
}
