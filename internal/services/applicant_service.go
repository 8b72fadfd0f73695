// internal/services/applicant_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

type ApplicantService struct {
	store store.Store
}

type ApplicantRequest struct {
	Name              string `json:"name" validate:"required,max=255"`
	Type              string `json:"type" validate:"required,max=100"`
	CNPJ              string `json:"cnpj,omitempty" validate:"omitempty,max=18"`
	CPF               string `json:"cpf,omitempty" validate:"omitempty,cpf"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address           string `json:"address,omitempty" validate:"omitempty,max=255"`
	City              string `json:"city,omitempty" validate:"omitempty,max=100"`
	State             string `json:"state,omitempty" validate:"omitempty,len=2"`
	ZipCode           string `json:"zip_code,omitempty" validate:"omitempty,max=9"`
	ResponsiblePerson string `json:"responsible_person,omitempty" validate:"omitempty,max=255"`
}

func NewApplicantService(st store.Store) *ApplicantService {
	return &ApplicantService{store: st}
}

func (s *ApplicantService) List() ([]models.Applicant, error) {
	return s.store.Applicants().List()
}

// ListSelectable returns only active applicants, the set offered in the
// requester selector on a new consent request.
func (s *ApplicantService) ListSelectable() ([]models.Applicant, error) {
	return s.store.Applicants().ListActive()
}

func (s *ApplicantService) Get(id uuid.UUID) (*models.Applicant, error) {
	return s.store.Applicants().GetByID(id)
}

func (s *ApplicantService) Create(req *ApplicantRequest) (*models.Applicant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ap := &models.Applicant{
		Name:              req.Name,
		Type:              req.Type,
		CNPJ:              req.CNPJ,
		CPF:               req.CPF,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
		ResponsiblePerson: req.ResponsiblePerson,
		IsActive:          true,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.store.Applicants().Create(ap); err != nil {
		return nil, fmt.Errorf("failed to create applicant: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"applicant_id": ap.ID,
		"type":         ap.Type,
	}).Info("Applicant registered")

	return ap, nil
}

func (s *ApplicantService) Update(id uuid.UUID, req *ApplicantRequest) (*models.Applicant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ap, err := s.store.Applicants().GetByID(id)
	if err != nil {
		return nil, err
	}

	ap.Name = req.Name
	ap.Type = req.Type
	ap.CNPJ = req.CNPJ
	ap.CPF = req.CPF
	ap.Email = req.Email
	ap.Phone = req.Phone
	ap.Address = req.Address
	ap.City = req.City
	ap.State = req.State
	ap.ZipCode = req.ZipCode
	ap.ResponsiblePerson = req.ResponsiblePerson

	if err := s.store.Applicants().Update(ap); err != nil {
		return nil, fmt.Errorf("failed to update applicant: %w", err)
	}

	logrus.WithField("applicant_id", ap.ID).Info("Applicant updated")
	return ap, nil
}

// Deactivate keeps the applicant on record but removes it from the
// requester selector. Existing consent requests are untouched.
func (s *ApplicantService) Deactivate(id uuid.UUID) (*models.Applicant, error) {
	ap, err := s.store.Applicants().GetByID(id)
	if err != nil {
		return nil, err
	}

	ap.IsActive = false
	if err := s.store.Applicants().Update(ap); err != nil {
		return nil, fmt.Errorf("failed to deactivate applicant: %w", err)
	}

	logrus.WithField("applicant_id", ap.ID).Info("Applicant deactivated")
	return ap, nil
}

// Reactivate restores a previously deactivated applicant.
func (s *ApplicantService) Reactivate(id uuid.UUID) (*models.Applicant, error) {
	ap, err := s.store.Applicants().GetByID(id)
	if err != nil {
		return nil, err
	}

	ap.IsActive = true
	if err := s.store.Applicants().Update(ap); err != nil {
		return nil, fmt.Errorf("failed to reactivate applicant: %w", err)
	}

	logrus.WithField("applicant_id", ap.ID).Info("Applicant reactivated")
	return ap, nil
}
