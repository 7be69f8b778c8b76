package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/utils"
)

type ShiftRepository interface {
	Create(ctx context.Context, sh *models.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error)

	ListOpen(ctx context.Context) ([]*models.Shift, error)
	ListByAgency(ctx context.Context, agencyID uuid.UUID) ([]*models.Shift, error)
	ListByAssignedWorker(ctx context.Context, workerID uuid.UUID) ([]*models.Shift, error)

	// UpdateIfVersion writes the full mutable row iff the stored
	// row_version still matches `expected`.
	UpdateIfVersion(ctx context.Context, sh *models.Shift, expected int64) (pgconn.CommandTag, error)

	// UpdateWithRetry runs the generic read-mutate-CAS loop. Mutate is
	// re-invoked against a fresh row on every attempt, so guards inside
	// it hold under contention.
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Shift) error) error

	// ApproveApplicationAtomic commits the approval in one unit: the new
	// application set, the assignee, and the OPEN→ASSIGNED transition.
	// Serialized per shift via SELECT FOR UPDATE plus the version check,
	// so a concurrent approval loses with ErrRowVersionConflict or
	// ErrInvalidState rather than double-assigning.
	ApproveApplicationAtomic(ctx context.Context, shiftID, workerID uuid.UUID, expectedVersion int64, apps []models.ShiftApplication) (*models.Shift, error)

	// UpdateStatusAtomic transitions from→to if the version matches and
	// the row is still in `from`.
	UpdateStatusAtomic(ctx context.Context, shiftID uuid.UUID, expectedVersion int64, from, to models.ShiftStatusType) (*models.Shift, error)
}

type shiftRepo struct {
	*BaseVersionedRepo[*models.Shift]
	db DB
}

func NewShiftRepository(db DB) ShiftRepository {
	r := &shiftRepo{db: db}
	selectStmt := baseSelectShift() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanShift)
	return r
}

func baseSelectShift() string {
	return `
        SELECT
            id, agency_id, title, location,
            start_time, end_time, rate, status,
            assigned_worker_id, applications,
            row_version, created_at, updated_at
        FROM shifts
    `
}

func scanShift(row pgx.Row) (*models.Shift, error) {
	var sh models.Shift
	var appsJSON []byte
	err := row.Scan(
		&sh.ID,
		&sh.AgencyID,
		&sh.Title,
		&sh.Location,
		&sh.StartTime,
		&sh.EndTime,
		&sh.Rate,
		&sh.Status,
		&sh.AssignedWorkerID,
		&appsJSON,
		&sh.RowVersion,
		&sh.CreatedAt,
		&sh.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapDBErr(err)
	}
	sh.Applications = []models.ShiftApplication{}
	if len(appsJSON) > 0 {
		if err := json.Unmarshal(appsJSON, &sh.Applications); err != nil {
			return nil, fmt.Errorf("unmarshalling shift applications: %w", err)
		}
	}
	return &sh, nil
}

func marshalApplications(apps []models.ShiftApplication) ([]byte, error) {
	if apps == nil {
		apps = []models.ShiftApplication{}
	}
	return json.Marshal(apps)
}

func (r *shiftRepo) Create(ctx context.Context, sh *models.Shift) error {
	appsJSON, err := marshalApplications(sh.Applications)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO shifts (
            id, agency_id, title, location,
            start_time, end_time, rate, status,
            assigned_worker_id, applications,
            created_at, updated_at, row_version
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW(),1
        )
    `,
		sh.ID,
		sh.AgencyID,
		sh.Title,
		sh.Location,
		sh.StartTime,
		sh.EndTime,
		sh.Rate,
		sh.Status,
		sh.AssignedWorkerID,
		appsJSON,
	)
	return mapDBErr(err)
}

func (r *shiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	row := r.db.QueryRow(ctx, baseSelectShift()+" WHERE id=$1", id)
	return scanShift(row)
}

func (r *shiftRepo) ListOpen(ctx context.Context) ([]*models.Shift, error) {
	return r.list(ctx, " WHERE status=$1 ORDER BY start_time", models.ShiftStatusOpen)
}

func (r *shiftRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID) ([]*models.Shift, error) {
	return r.list(ctx, " WHERE agency_id=$1 ORDER BY start_time DESC", agencyID)
}

func (r *shiftRepo) ListByAssignedWorker(ctx context.Context, workerID uuid.UUID) ([]*models.Shift, error) {
	return r.list(ctx, " WHERE assigned_worker_id=$1 ORDER BY start_time DESC", workerID)
}

func (r *shiftRepo) list(ctx context.Context, where string, args ...any) ([]*models.Shift, error) {
	rows, err := r.db.Query(ctx, baseSelectShift()+where, args...)
	if err != nil {
		return nil, mapDBErr(err)
	}
	defer rows.Close()

	var out []*models.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

func (r *shiftRepo) UpdateIfVersion(ctx context.Context, sh *models.Shift, expected int64) (pgconn.CommandTag, error) {
	appsJSON, err := marshalApplications(sh.Applications)
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, `
        UPDATE shifts
        SET title=$1, location=$2,
            start_time=$3, end_time=$4, rate=$5,
            status=$6, assigned_worker_id=$7, applications=$8,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$9 AND row_version=$10
    `,
		sh.Title,
		sh.Location,
		sh.StartTime,
		sh.EndTime,
		sh.Rate,
		sh.Status,
		sh.AssignedWorkerID,
		appsJSON,
		sh.ID,
		expected,
	)
	return tag, mapDBErr(err)
}

func (r *shiftRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Shift) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *shiftRepo) ApproveApplicationAtomic(
	ctx context.Context,
	shiftID, workerID uuid.UUID,
	expectedVersion int64,
	apps []models.ShiftApplication,
) (*models.Shift, error) {
	openOnly := models.ShiftStatusOpen
	return r.lockAndUpdate(ctx, shiftID, expectedVersion, &openOnly, func(tx pgx.Tx, sh *models.Shift) error {
		appsJSON, err := marshalApplications(apps)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
            UPDATE shifts
            SET status=$1,
                assigned_worker_id=$2,
                applications=$3,
                row_version=row_version+1, updated_at=NOW()
            WHERE id=$4
        `, models.ShiftStatusAssigned, workerID, appsJSON, shiftID)
		return err
	})
}

func (r *shiftRepo) UpdateStatusAtomic(
	ctx context.Context,
	shiftID uuid.UUID,
	expectedVersion int64,
	from, to models.ShiftStatusType,
) (*models.Shift, error) {
	return r.lockAndUpdate(ctx, shiftID, expectedVersion, &from, func(tx pgx.Tx, sh *models.Shift) error {
		_, err := tx.Exec(ctx, `
            UPDATE shifts
            SET status=$1,
                row_version=row_version+1, updated_at=NOW()
            WHERE id=$2
        `, to, shiftID)
		return err
	})
}

// lockAndUpdate is the shared SELECT FOR UPDATE → guard → mutate →
// reselect unit. requiredStatus, when non-nil, is the state the row must
// still be in for the mutation to proceed.
func (r *shiftRepo) lockAndUpdate(
	ctx context.Context,
	shiftID uuid.UUID,
	expectedVersion int64,
	requiredStatus *models.ShiftStatusType,
	mutate func(tx pgx.Tx, sh *models.Shift) error,
) (*models.Shift, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, mapDBErr(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, baseSelectShift()+" WHERE id=$1 FOR UPDATE", shiftID)
	sh, err := scanShift(row)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		err = utils.ErrNotFound
		return nil, err
	}
	if sh.RowVersion != expectedVersion {
		err = utils.ErrRowVersionConflict
		return sh, err
	}
	if requiredStatus != nil && sh.Status != *requiredStatus {
		err = utils.ErrInvalidState
		return sh, err
	}

	if err = mutate(tx, sh); err != nil {
		return nil, mapDBErr(err)
	}

	newRow := tx.QueryRow(ctx, baseSelectShift()+" WHERE id=$1", shiftID)
	var updated *models.Shift
	updated, err = scanShift(newRow)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
