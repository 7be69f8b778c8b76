package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/carevantage/staffing-service/internal/models"
)

// RequiredCatalogRepository serves the role-specific list of credentials a
// worker must hold. The catalog is owned elsewhere (admin tooling); this
// service only reads it.
type RequiredCatalogRepository interface {
	ListByRole(ctx context.Context, role models.RoleType) ([]models.RequiredCredential, error)
}

type requiredCatalogRepo struct {
	db DB
}

func NewRequiredCatalogRepository(db DB) RequiredCatalogRepository {
	return &requiredCatalogRepo{db: db}
}

func (r *requiredCatalogRepo) ListByRole(ctx context.Context, role models.RoleType) ([]models.RequiredCredential, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, role, name, kind
        FROM required_credentials
        WHERE role=$1
        ORDER BY name
    `, role)
	if err != nil {
		return nil, mapDBErr(err)
	}
	defer rows.Close()

	var out []models.RequiredCredential
	for rows.Next() {
		var rc models.RequiredCredential
		if err := rows.Scan(&rc.ID, &rc.Role, &rc.Name, &rc.Kind); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				break
			}
			return nil, mapDBErr(err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
