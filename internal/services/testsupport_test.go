package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/carevantage/staffing-service/internal/models"
	"github.com/carevantage/staffing-service/internal/utils"
)

// In-memory repository fakes. The shift fake preserves the production
// concurrency contract: version-checked updates under a single mutex, so
// the race tests exercise the same winner/loser semantics as the SQL
// implementation.

type memShiftRepo struct {
	mu     sync.Mutex
	shifts map[uuid.UUID]*models.Shift
}

func newMemShiftRepo() *memShiftRepo {
	return &memShiftRepo{shifts: make(map[uuid.UUID]*models.Shift)}
}

func copyShift(sh *models.Shift) *models.Shift {
	if sh == nil {
		return nil
	}
	out := *sh
	out.Applications = make([]models.ShiftApplication, len(sh.Applications))
	copy(out.Applications, sh.Applications)
	if sh.AssignedWorkerID != nil {
		id := *sh.AssignedWorkerID
		out.AssignedWorkerID = &id
	}
	return &out
}

func (r *memShiftRepo) Create(ctx context.Context, sh *models.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shifts[sh.ID] = copyShift(sh)
	return nil
}

func (r *memShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyShift(r.shifts[id]), nil
}

func (r *memShiftRepo) ListOpen(ctx context.Context) ([]*models.Shift, error) {
	return r.listWhere(func(sh *models.Shift) bool { return sh.Status == models.ShiftStatusOpen })
}

func (r *memShiftRepo) ListByAgency(ctx context.Context, agencyID uuid.UUID) ([]*models.Shift, error) {
	return r.listWhere(func(sh *models.Shift) bool { return sh.AgencyID == agencyID })
}

func (r *memShiftRepo) ListByAssignedWorker(ctx context.Context, workerID uuid.UUID) ([]*models.Shift, error) {
	return r.listWhere(func(sh *models.Shift) bool {
		return sh.AssignedWorkerID != nil && *sh.AssignedWorkerID == workerID
	})
}

func (r *memShiftRepo) listWhere(pred func(*models.Shift) bool) ([]*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Shift
	for _, sh := range r.shifts {
		if pred(sh) {
			out = append(out, copyShift(sh))
		}
	}
	return out, nil
}

func (r *memShiftRepo) UpdateIfVersion(ctx context.Context, sh *models.Shift, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.shifts[sh.ID]
	if !ok || current.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	updated := copyShift(sh)
	updated.RowVersion = expected + 1
	updated.UpdatedAt = time.Now().UTC()
	r.shifts[sh.ID] = updated
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *memShiftRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Shift) error) error {
	for attempt := 0; attempt < 3; attempt++ {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return utils.ErrNotFound
		}
		oldVersion := current.RowVersion
		if err := mutate(current); err != nil {
			return err
		}
		tag, err := r.UpdateIfVersion(ctx, current, oldVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			return nil
		}
	}
	return utils.ErrRowVersionConflict
}

func (r *memShiftRepo) ApproveApplicationAtomic(
	ctx context.Context,
	shiftID, workerID uuid.UUID,
	expectedVersion int64,
	apps []models.ShiftApplication,
) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sh, ok := r.shifts[shiftID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if sh.RowVersion != expectedVersion {
		return copyShift(sh), utils.ErrRowVersionConflict
	}
	if sh.Status != models.ShiftStatusOpen {
		return copyShift(sh), utils.ErrInvalidState
	}
	id := workerID
	sh.Status = models.ShiftStatusAssigned
	sh.AssignedWorkerID = &id
	sh.Applications = make([]models.ShiftApplication, len(apps))
	copy(sh.Applications, apps)
	sh.RowVersion++
	sh.UpdatedAt = time.Now().UTC()
	return copyShift(sh), nil
}

func (r *memShiftRepo) UpdateStatusAtomic(
	ctx context.Context,
	shiftID uuid.UUID,
	expectedVersion int64,
	from, to models.ShiftStatusType,
) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sh, ok := r.shifts[shiftID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if sh.RowVersion != expectedVersion {
		return copyShift(sh), utils.ErrRowVersionConflict
	}
	if sh.Status != from {
		return copyShift(sh), utils.ErrInvalidState
	}
	sh.Status = to
	sh.RowVersion++
	sh.UpdatedAt = time.Now().UTC()
	return copyShift(sh), nil
}

type memCredentialRepo struct {
	mu    sync.Mutex
	creds map[uuid.UUID]*models.Credential
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{creds: make(map[uuid.UUID]*models.Credential)}
}

func (r *memCredentialRepo) Create(ctx context.Context, c *models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.creds[c.ID] = &cp
	return nil
}

func (r *memCredentialRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.creds[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *memCredentialRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Credential
	for _, c := range r.creds {
		if c.OwnerID == ownerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCredentialRepo) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	c.CompletionProgress = progress
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	return &cp, nil
}

func (r *memCredentialRepo) IncrementAttachmentCount(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.creds[id]
	if !ok {
		return utils.ErrNotFound
	}
	c.AttachmentCount++
	return nil
}

func (r *memCredentialRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Credential
	for _, c := range r.creds {
		if c.CompletionProgress == 100 && !c.ExpiryDate.Before(from) && !c.ExpiryDate.After(to) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memWorkerRepo struct {
	mu      sync.Mutex
	workers map[uuid.UUID]*models.Worker
}

func newMemWorkerRepo(workers ...*models.Worker) *memWorkerRepo {
	r := &memWorkerRepo{workers: make(map[uuid.UUID]*models.Worker)}
	for _, w := range workers {
		r.workers[w.ID] = w
	}
	return r
}

func (r *memWorkerRepo) Create(ctx context.Context, w *models.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workers[w.ID] = w
	return nil
}

func (r *memWorkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.workers[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *memWorkerRepo) GetByEmail(ctx context.Context, email string) (*models.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.workers {
		if w.Email == email {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

type memCatalogRepo struct {
	entries map[models.RoleType][]models.RequiredCredential
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{entries: make(map[models.RoleType][]models.RequiredCredential)}
}

func (r *memCatalogRepo) add(role models.RoleType, name string, kind models.CredentialKindType) {
	r.entries[role] = append(r.entries[role], models.RequiredCredential{
		ID:   uuid.New(),
		Role: role,
		Name: name,
		Kind: kind,
	})
}

func (r *memCatalogRepo) ListByRole(ctx context.Context, role models.RoleType) ([]models.RequiredCredential, error) {
	return r.entries[role], nil
}

// mustCredential builds a valid credential for fixtures.
func mustCredential(t interface{ Fatalf(string, ...any) }, ownerID uuid.UUID, name string, progress int, issue, expiry time.Time) *models.Credential {
	c, err := models.NewCredential(ownerID, models.CredentialKindCertification, name, "Red Cross", issue, expiry, progress)
	if err != nil {
		t.Fatalf("building credential %s: %v", name, err)
	}
	return c
}
