package services

import (
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
)

// Identity is the authenticated requester as resolved by the auth
// middleware. Services trust it completely.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
