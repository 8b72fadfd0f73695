// internal/store/pgstore/pgstore.go
package pgstore

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/DBN92/solve-it-neat/internal/database"
	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
)

// Store is the hosted backend: rows in postgres through GORM, with the
// audit trail in its own consent_actions table instead of inline on the
// record.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Consents() store.ConsentStore     { return &consentStore{db: s.db} }
func (s *Store) Applicants() store.ApplicantStore { return &applicantStore{db: s.db} }
func (s *Store) Users() store.UserStore           { return &userStore{db: s.db} }

func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	// The gorm postgres driver is pgx-based, so constraint violations
	// surface as *pgconn.PgError. 23505 is unique_violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrDuplicateEmail
	}
	return err
}

// Consents

type consentStore struct {
	db *gorm.DB
}

func (c *consentStore) List() ([]models.ConsentRequest, error) {
	var consents []models.ConsentRequest
	err := c.db.Preload("ActionHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("consent_actions.timestamp ASC")
	}).Order("created_at DESC").Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}

func (c *consentStore) GetByID(id uuid.UUID) (*models.ConsentRequest, error) {
	var rec models.ConsentRequest
	err := c.db.Preload("ActionHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("consent_actions.timestamp ASC")
	}).First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &rec, nil
}

func (c *consentStore) ListByCPF(cpfDigits string) ([]models.ConsentRequest, error) {
	var consents []models.ConsentRequest
	err := c.db.Preload("ActionHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("consent_actions.timestamp ASC")
	}).Where(`regexp_replace(cpf, '\D', '', 'g') = ?`, cpfDigits).
		Order("created_at DESC").Find(&consents).Error
	if err != nil {
		return nil, err
	}
	return consents, nil
}

func (c *consentStore) Create(rec *models.ConsentRequest, action *models.ConsentAction) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return database.WithTransaction(c.db, func(tx *gorm.DB) error {
		// ActionHistory rows are written explicitly below, not through
		// the association, so the record insert stays a single row.
		if err := tx.Omit("ActionHistory").Create(rec).Error; err != nil {
			return err
		}
		return appendAction(tx, rec, action)
	})
}

func (c *consentStore) Update(rec *models.ConsentRequest, action *models.ConsentAction) error {
	return database.WithTransaction(c.db, func(tx *gorm.DB) error {
		result := tx.Omit("ActionHistory").Save(rec)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return appendAction(tx, rec, action)
	})
}

func appendAction(tx *gorm.DB, rec *models.ConsentRequest, action *models.ConsentAction) error {
	if action == nil {
		return nil
	}
	action.ConsentID = rec.ID
	if action.ID == uuid.Nil {
		action.ID = uuid.New()
	}
	if err := tx.Create(action).Error; err != nil {
		return err
	}
	rec.ActionHistory = append(rec.ActionHistory, *action)
	return nil
}

func (c *consentStore) History(consentID uuid.UUID) ([]models.ConsentAction, error) {
	var count int64
	if err := c.db.Model(&models.ConsentRequest{}).Where("id = ?", consentID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, store.ErrNotFound
	}

	var actions []models.ConsentAction
	err := c.db.Where("consent_id = ?", consentID).Order("timestamp ASC").Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}

// Applicants

type applicantStore struct {
	db *gorm.DB
}

func (a *applicantStore) List() ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := a.db.Order("name ASC").Find(&applicants).Error; err != nil {
		return nil, err
	}
	return applicants, nil
}

func (a *applicantStore) ListActive() ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := a.db.Where("is_active = ?", true).Order("name ASC").Find(&applicants).Error; err != nil {
		return nil, err
	}
	return applicants, nil
}

func (a *applicantStore) GetByID(id uuid.UUID) (*models.Applicant, error) {
	var ap models.Applicant
	if err := a.db.First(&ap, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &ap, nil
}

func (a *applicantStore) Create(ap *models.Applicant) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	return a.db.Create(ap).Error
}

func (a *applicantStore) Update(ap *models.Applicant) error {
	result := a.db.Save(ap)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Users

type userStore struct {
	db *gorm.DB
}

func (u *userStore) List() ([]models.User, error) {
	var users []models.User
	if err := u.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userStore) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := u.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *userStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := u.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (u *userStore) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := u.db.Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (u *userStore) Update(user *models.User) error {
	result := u.db.Save(user)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (u *userStore) Delete(id uuid.UUID) error {
	result := u.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (u *userStore) CountByRole(role models.UserRole) (int64, error) {
	var n int64
	err := u.db.Model(&models.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}
