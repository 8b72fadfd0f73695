// internal/services/consent_service.go
package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/DBN92/solve-it-neat/internal/metrics"
	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

var (
	ErrConsentNotPending     = errors.New("consent request is not pending")
	ErrConsentNotApproved    = errors.New("consent request is not approved")
	ErrConsentAlreadyRevoked = errors.New("consent has already been revoked")
)

// scopeByDataType maps the data types offered on the request form to
// the SENATRAN read scopes granted on approval. Unknown types fall back
// to a lowercased scope so new form options keep working.
var scopeByDataType = map[string]string{
	"CNH":       "senatran:cnh:read",
	"Veículos":  "senatran:veiculos:read",
	"Multas":    "senatran:multas:read",
	"Pontuação": "senatran:pontuacao:read",
}

const tokenHeader = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9"

type ConsentService struct {
	store store.Store
}

type CreateConsentRequest struct {
	DataUser     string   `json:"data_user" validate:"required,max=255"`
	DataUserType string   `json:"data_user_type" validate:"required,max=100"`
	DataOwner    string   `json:"data_owner" validate:"required,max=255"`
	CPF          string   `json:"cpf" validate:"required,cpf"`
	DataTypes    []string `json:"data_types" validate:"required,min=1,dive,required"`
	Purpose      string   `json:"purpose" validate:"required"`
	LegalBasis   string   `json:"legal_basis" validate:"required,max=255"`
	Deadline     string   `json:"deadline" validate:"required,datetime=2006-01-02"`
	Controller   string   `json:"controller" validate:"required,max=255"`
}

type DecisionRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

func NewConsentService(st store.Store) *ConsentService {
	return &ConsentService{store: st}
}

func (s *ConsentService) List() ([]models.ConsentRequest, error) {
	return s.store.Consents().List()
}

func (s *ConsentService) Get(id uuid.UUID) (*models.ConsentRequest, error) {
	return s.store.Consents().GetByID(id)
}

// ListByOwnerKey returns the consents whose CPF matches the given key,
// comparing digits only so "123.456.789-00" and "12345678900" address
// the same owner.
func (s *ConsentService) ListByOwnerKey(cpf string) ([]models.ConsentRequest, error) {
	return s.store.Consents().ListByCPF(store.DigitsOnly(cpf))
}

func (s *ConsentService) History(id uuid.UUID) ([]models.ConsentAction, error) {
	return s.store.Consents().History(id)
}

func (s *ConsentService) Create(req *CreateConsentRequest) (*models.ConsentRequest, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	rec := &models.ConsentRequest{
		DataUser:     req.DataUser,
		DataUserType: req.DataUserType,
		DataOwner:    req.DataOwner,
		CPF:          req.CPF,
		DataTypes:    pq.StringArray(req.DataTypes),
		Purpose:      req.Purpose,
		LegalBasis:   req.LegalBasis,
		Deadline:     req.Deadline,
		Controller:   req.Controller,
		Status:       models.ConsentStatusPending,
		CreatedAt:    now,
		LastModified: now,
	}

	action := &models.ConsentAction{
		Action:      models.ActionCreated,
		Timestamp:   now,
		PerformedBy: models.PerformerSystem,
		Reason:      "Solicitação de consentimento criada",
		CreatedAt:   now,
	}

	if err := s.store.Consents().Create(rec, action); err != nil {
		return nil, fmt.Errorf("failed to create consent request: %w", err)
	}

	metrics.ConsentTransitions.WithLabelValues(string(models.ActionCreated)).Inc()
	logrus.WithFields(logrus.Fields{
		"consent_id": rec.ID,
		"data_user":  rec.DataUser,
		"data_types": req.DataTypes,
	}).Info("Consent request created")

	return rec, nil
}

// Approve moves a pending request to approved, grants the scopes
// derived from its data types and synthesizes the access token the
// data user presents downstream.
func (s *ConsentService) Approve(id uuid.UUID) (*models.ConsentRequest, error) {
	rec, err := s.store.Consents().GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.ConsentStatusPending {
		return nil, ErrConsentNotPending
	}

	now := time.Now().UTC()
	rec.Status = models.ConsentStatusApproved
	rec.ApprovedAt = &now
	rec.LastModified = now
	rec.Scopes = pq.StringArray(ScopesForDataTypes(rec.DataTypes))
	rec.TokenID = SynthesizeToken(rec.CPF, rec.Scopes)

	action := &models.ConsentAction{
		Action:      models.ActionApproved,
		Timestamp:   now,
		PerformedBy: models.PerformerUser,
		Reason:      "Aprovado pelo titular dos dados",
		CreatedAt:   now,
	}

	if err := s.store.Consents().Update(rec, action); err != nil {
		return nil, fmt.Errorf("failed to approve consent: %w", err)
	}

	metrics.ConsentTransitions.WithLabelValues(string(models.ActionApproved)).Inc()
	metrics.TokensIssued.Inc()
	logrus.WithFields(logrus.Fields{
		"consent_id": rec.ID,
		"scopes":     []string(rec.Scopes),
	}).Info("Consent approved")

	return rec, nil
}

func (s *ConsentService) Reject(id uuid.UUID, reason string) (*models.ConsentRequest, error) {
	rec, err := s.store.Consents().GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.ConsentStatusPending {
		return nil, ErrConsentNotPending
	}

	now := time.Now().UTC()
	rec.Status = models.ConsentStatusRejected
	rec.RejectedAt = &now
	rec.LastModified = now

	if reason == "" {
		reason = "Rejeitado pelo titular dos dados"
	}
	action := &models.ConsentAction{
		Action:      models.ActionRejected,
		Timestamp:   now,
		PerformedBy: models.PerformerUser,
		Reason:      reason,
		CreatedAt:   now,
	}

	if err := s.store.Consents().Update(rec, action); err != nil {
		return nil, fmt.Errorf("failed to reject consent: %w", err)
	}

	metrics.ConsentTransitions.WithLabelValues(string(models.ActionRejected)).Inc()
	logrus.WithField("consent_id", rec.ID).Info("Consent rejected")

	return rec, nil
}

// Revoke withdraws a previously granted consent. The status column
// stays approved; revocation is the RevokedAt overlay, and the granted
// scopes and token are cleared so the artifact stops being honored.
func (s *ConsentService) Revoke(id uuid.UUID, reason string) (*models.ConsentRequest, error) {
	rec, err := s.store.Consents().GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec.Status != models.ConsentStatusApproved {
		return nil, ErrConsentNotApproved
	}
	if rec.Revoked() {
		return nil, ErrConsentAlreadyRevoked
	}

	now := time.Now().UTC()
	rec.RevokedAt = &now
	rec.LastModified = now
	rec.Scopes = nil
	rec.TokenID = ""

	if reason == "" {
		reason = "Revogado pelo titular dos dados"
	}
	action := &models.ConsentAction{
		Action:      models.ActionRevoked,
		Timestamp:   now,
		PerformedBy: models.PerformerUser,
		Reason:      reason,
		CreatedAt:   now,
	}

	if err := s.store.Consents().Update(rec, action); err != nil {
		return nil, fmt.Errorf("failed to revoke consent: %w", err)
	}

	metrics.ConsentTransitions.WithLabelValues(string(models.ActionRevoked)).Inc()
	logrus.WithField("consent_id", rec.ID).Info("Consent revoked")

	return rec, nil
}

// ScopesForDataTypes resolves the granted scope for each requested data
// type, preserving request order.
func ScopesForDataTypes(dataTypes []string) []string {
	scopes := make([]string, 0, len(dataTypes))
	for _, dt := range dataTypes {
		if scope, ok := scopeByDataType[dt]; ok {
			scopes = append(scopes, scope)
			continue
		}
		scopes = append(scopes, "senatran:"+strings.ToLower(dt)+":read")
	}
	return scopes
}

// SynthesizeToken builds the display token handed to the data user. It
// is shaped like a JWT so downstream tooling can decode the payload,
// but it is unsigned and carries no credential value.
func SynthesizeToken(cpf string, scopes []string) string {
	payload, _ := json.Marshal(map[string]interface{}{
		"sub":    cpf,
		"scopes": scopes,
	})
	return tokenHeader + "." + base64.RawStdEncoding.EncodeToString(payload)
}
