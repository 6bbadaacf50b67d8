package storage

import (
	"errors"

	"github.com/taxfolio/backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore is the user directory. Email lookup is an exact, case-sensitive
// match against the stored value.
type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

// DocumentStore persists uploaded document metadata rows.
type DocumentStore interface {
	Create(doc *models.Document) error
}
