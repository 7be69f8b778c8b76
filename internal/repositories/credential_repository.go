package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/utils"
)

type CredentialRepository interface {
	Create(ctx context.Context, c *models.Credential) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Credential, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Credential, error)

	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*models.Credential, error)
	IncrementAttachmentCount(ctx context.Context, id uuid.UUID) error

	// ListExpiringBetween returns fully-completed credentials whose
	// expiry falls inside the window. Used by the daily reminder sweep.
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Credential, error)
}

type credentialRepo struct {
	db DB
}

func NewCredentialRepository(db DB) CredentialRepository {
	return &credentialRepo{db: db}
}

func baseSelectCredential() string {
	return `
        SELECT
            id, owner_id, kind, name, issuer,
            issue_date, expiry_date,
            completion_progress, attachment_count,
            created_at, updated_at
        FROM credentials
    `
}

func scanCredential(row pgx.Row) (*models.Credential, error) {
	var c models.Credential
	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Kind,
		&c.Name,
		&c.Issuer,
		&c.IssueDate,
		&c.ExpiryDate,
		&c.CompletionProgress,
		&c.AttachmentCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBErr(err)
	}
	return &c, nil
}

func (r *credentialRepo) Create(ctx context.Context, c *models.Credential) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO credentials (
            id, owner_id, kind, name, issuer,
            issue_date, expiry_date,
            completion_progress, attachment_count,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW()
        )
    `,
		c.ID,
		c.OwnerID,
		c.Kind,
		c.Name,
		c.Issuer,
		c.IssueDate,
		c.ExpiryDate,
		c.CompletionProgress,
		c.AttachmentCount,
	)
	return mapDBErr(err)
}

func (r *credentialRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Credential, error) {
	row := r.db.QueryRow(ctx, baseSelectCredential()+" WHERE id=$1", id)
	return scanCredential(row)
}

func (r *credentialRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Credential, error) {
	return r.list(ctx, " WHERE owner_id=$1 ORDER BY issue_date DESC", ownerID)
}

func (r *credentialRepo) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*models.Credential, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE credentials
        SET completion_progress=$1, updated_at=NOW()
        WHERE id=$2
    `, progress, id)
	if err != nil {
		return nil, mapDBErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, utils.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *credentialRepo) IncrementAttachmentCount(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE credentials
        SET attachment_count=attachment_count+1, updated_at=NOW()
        WHERE id=$1
    `, id)
	if err != nil {
		return mapDBErr(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *credentialRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Credential, error) {
	return r.list(ctx, `
        WHERE completion_progress=100
          AND expiry_date >= $1
          AND expiry_date <= $2
        ORDER BY expiry_date
    `, from, to)
}

func (r *credentialRepo) list(ctx context.Context, where string, args ...any) ([]*models.Credential, error) {
	rows, err := r.db.Query(ctx, baseSelectCredential()+where, args...)
	if err != nil {
		return nil, mapDBErr(err)
	}
	defer rows.Close()

	var out []*models.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
