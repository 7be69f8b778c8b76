package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleType selects which required-credential catalog applies to a worker.
type RoleType string

const (
	RoleDSP RoleType = "DSP"
	RoleRN  RoleType = "RN"
	RoleLPN RoleType = "LPN"
)

type Worker struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        RoleType  `json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Worker) GetID() string {
	return w.ID.String()
}
