// internal/store/localstore/localstore.go
package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
)

const (
	collectionUsers      = "users"
	collectionConsents   = "consent_requests"
	collectionApplicants = "applicants"
)

// Store keeps every collection as one JSON blob in a string-keyed
// sqlite table, the way the browser build kept them in localStorage.
// Every mutation rewrites the whole collection; concurrent writers from
// other processes are last-write-wins.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(path string, seed bool) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create collections table: %w", err)
	}

	s := &Store{db: db}
	if seed {
		if err := s.seedDefaults(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed local store: %w", err)
		}
	}
	return s, nil
}

func (s *Store) Consents() store.ConsentStore     { return &consentStore{s} }
func (s *Store) Applicants() store.ApplicantStore { return &applicantStore{s} }
func (s *Store) Users() store.UserStore           { return &userStore{s} }

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) readCollection(name string, out interface{}) error {
	var data string
	err := s.db.QueryRow(`SELECT data FROM collections WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	return json.Unmarshal([]byte(data), out)
}

func (s *Store) writeCollection(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", name, err)
	}
	_, err = s.db.Exec(`INSERT INTO collections (name, data) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data`, name, string(data))
	if err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	return nil
}

func (s *Store) hasCollection(name string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM collections WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Consents

type consentStore struct {
	s *Store
}

func (c *consentStore) List() ([]models.ConsentRequest, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.load()
}

func (c *consentStore) load() ([]models.ConsentRequest, error) {
	var consents []models.ConsentRequest
	if err := c.s.readCollection(collectionConsents, &consents); err != nil {
		return nil, err
	}
	return consents, nil
}

func (c *consentStore) GetByID(id uuid.UUID) (*models.ConsentRequest, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	consents, err := c.load()
	if err != nil {
		return nil, err
	}
	for i := range consents {
		if consents[i].ID == id {
			return &consents[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *consentStore) ListByCPF(cpfDigits string) ([]models.ConsentRequest, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	consents, err := c.load()
	if err != nil {
		return nil, err
	}
	matched := make([]models.ConsentRequest, 0)
	for _, rec := range consents {
		if store.DigitsOnly(rec.CPF) == cpfDigits {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (c *consentStore) Create(rec *models.ConsentRequest, action *models.ConsentAction) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	consents, err := c.load()
	if err != nil {
		return err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if action != nil {
		action.ConsentID = rec.ID
		if action.ID == uuid.Nil {
			action.ID = uuid.New()
		}
		rec.ActionHistory = append(rec.ActionHistory, *action)
	}
	consents = append(consents, *rec)
	return c.s.writeCollection(collectionConsents, consents)
}

func (c *consentStore) Update(rec *models.ConsentRequest, action *models.ConsentAction) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	consents, err := c.load()
	if err != nil {
		return err
	}
	for i := range consents {
		if consents[i].ID == rec.ID {
			if action != nil {
				action.ConsentID = rec.ID
				if action.ID == uuid.Nil {
					action.ID = uuid.New()
				}
				rec.ActionHistory = append(rec.ActionHistory, *action)
			}
			consents[i] = *rec
			return c.s.writeCollection(collectionConsents, consents)
		}
	}
	return store.ErrNotFound
}

func (c *consentStore) History(consentID uuid.UUID) ([]models.ConsentAction, error) {
	rec, err := c.GetByID(consentID)
	if err != nil {
		return nil, err
	}
	return rec.ActionHistory, nil
}

// Applicants

type applicantStore struct {
	s *Store
}

func (a *applicantStore) List() ([]models.Applicant, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return a.load()
}

func (a *applicantStore) load() ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := a.s.readCollection(collectionApplicants, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

func (a *applicantStore) ListActive() ([]models.Applicant, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	applicants, err := a.load()
	if err != nil {
		return nil, err
	}
	active := make([]models.Applicant, 0)
	for _, ap := range applicants {
		if ap.IsActive {
			active = append(active, ap)
		}
	}
	return active, nil
}

func (a *applicantStore) GetByID(id uuid.UUID) (*models.Applicant, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	applicants, err := a.load()
	if err != nil {
		return nil, err
	}
	for i := range applicants {
		if applicants[i].ID == id {
			return &applicants[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (a *applicantStore) Create(ap *models.Applicant) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	applicants, err := a.load()
	if err != nil {
		return err
	}
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	applicants = append(applicants, *ap)
	return a.s.writeCollection(collectionApplicants, applicants)
}

func (a *applicantStore) Update(ap *models.Applicant) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	applicants, err := a.load()
	if err != nil {
		return err
	}
	for i := range applicants {
		if applicants[i].ID == ap.ID {
			applicants[i] = *ap
			return a.s.writeCollection(collectionApplicants, applicants)
		}
	}
	return store.ErrNotFound
}

// Users

type userStore struct {
	s *Store
}

func (u *userStore) List() ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return u.load()
}

func (u *userStore) load() ([]models.User, error) {
	var users []models.User
	if err := u.s.readCollection(collectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userStore) GetByID(id uuid.UUID) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users, err := u.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *userStore) GetByEmail(email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users, err := u.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *userStore) Create(user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users, err := u.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	users = append(users, *user)
	return u.s.writeCollection(collectionUsers, users)
}

func (u *userStore) Update(user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users, err := u.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return u.s.writeCollection(collectionUsers, users)
		}
	}
	return store.ErrNotFound
}

func (u *userStore) Delete(id uuid.UUID) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users, err := u.load()
	if err != nil {
		return err
	}
	filtered := users[:0:0]
	for _, usr := range users {
		if usr.ID != id {
			filtered = append(filtered, usr)
		}
	}
	if len(filtered) == len(users) {
		return store.ErrNotFound
	}
	return u.s.writeCollection(collectionUsers, filtered)
}

func (u *userStore) CountByRole(role models.UserRole) (int64, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	users, err := u.load()
	if err != nil {
		return 0, err
	}
	var n int64
	for _, usr := range users {
		if usr.Role == role {
			n++
		}
	}
	return n, nil
}
