package storage

import (
	"errors"

	"github.com/taxfolio/backend/internal/models"
	"gorm.io/gorm"
)

// Users is the GORM-backed UserStore.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts the user row. The unique index on email is the authority
// under concurrent registrations; a violation surfaces as ErrDuplicate.
func (s *Users) Create(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Documents is the GORM-backed DocumentStore.
type Documents struct {
	db *gorm.DB
}

func NewDocuments(db *gorm.DB) *Documents {
	return &Documents{db: db}
}

func (s *Documents) Create(doc *models.Document) error {
	return s.db.Create(doc).Error
}
