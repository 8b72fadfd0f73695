// internal/store/store.go
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/DBN92/solve-it-neat/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// ConsentStore is the record-access contract for consent requests.
// Mutating operations take the audit action to persist alongside the
// record, so a record write and its action row cannot be split.
type ConsentStore interface {
	List() ([]models.ConsentRequest, error)
	GetByID(id uuid.UUID) (*models.ConsentRequest, error)
	// ListByCPF matches on digits only; callers pass a normalized key
	// and implementations strip formatting from the stored value.
	ListByCPF(cpfDigits string) ([]models.ConsentRequest, error)
	Create(rec *models.ConsentRequest, action *models.ConsentAction) error
	Update(rec *models.ConsentRequest, action *models.ConsentAction) error
	History(consentID uuid.UUID) ([]models.ConsentAction, error)
}

type ApplicantStore interface {
	List() ([]models.Applicant, error)
	ListActive() ([]models.Applicant, error)
	GetByID(id uuid.UUID) (*models.Applicant, error)
	Create(a *models.Applicant) error
	Update(a *models.Applicant) error
}

type UserStore interface {
	List() ([]models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(u *models.User) error
	Update(u *models.User) error
	Delete(id uuid.UUID) error
	CountByRole(role models.UserRole) (int64, error)
}

// Store bundles the per-collection stores behind one backend. The
// backend is picked at startup; collections never span backends.
type Store interface {
	Consents() ConsentStore
	Applicants() ApplicantStore
	Users() UserStore
	Ping() error
	Close() error
}
