package models

import "github.com/google/uuid"

// RequiredCredential is one entry in a role's required-credential catalog:
// a named credential the worker must hold with a currently-valid derived
// status. Name is the matching key against Credential.Name; Kind is the
// coarse category for display grouping.
type RequiredCredential struct {
	ID   uuid.UUID          `json:"id"`
	Role RoleType           `json:"role"`
	Name string             `json:"name"`
	Kind CredentialKindType `json:"kind"`
}
