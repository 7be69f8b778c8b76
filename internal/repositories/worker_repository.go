package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/carevantage/staffing-service/internal/models"
)

type WorkerRepository interface {
	Create(ctx context.Context, w *models.Worker) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	GetByEmail(ctx context.Context, email string) (*models.Worker, error)
}

type workerRepo struct {
	db DB
}

func NewWorkerRepository(db DB) WorkerRepository {
	return &workerRepo{db: db}
}

func baseSelectWorker() string {
	return `
        SELECT
            id, email, phone_number, first_name, last_name, role,
            created_at, updated_at
        FROM workers
    `
}

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var w models.Worker
	err := row.Scan(
		&w.ID,
		&w.Email,
		&w.PhoneNumber,
		&w.FirstName,
		&w.LastName,
		&w.Role,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBErr(err)
	}
	return &w, nil
}

func (r *workerRepo) Create(ctx context.Context, w *models.Worker) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO workers (
            id, email, phone_number, first_name, last_name, role,
            created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,NOW(),NOW()
        )
    `,
		w.ID,
		w.Email,
		w.PhoneNumber,
		w.FirstName,
		w.LastName,
		w.Role,
	)
	return mapDBErr(err)
}

func (r *workerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	row := r.db.QueryRow(ctx, baseSelectWorker()+" WHERE id=$1", id)
	return scanWorker(row)
}

func (r *workerRepo) GetByEmail(ctx context.Context, email string) (*models.Worker, error) {
	row := r.db.QueryRow(ctx, baseSelectWorker()+" WHERE email=$1", email)
	return scanWorker(row)
}
