// internal/store/localstore/seed.go
package localstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/DBN92/solve-it-neat/internal/models"
)

// seedDefaults populates a fresh local database the way a first run of
// the hosted application would, so the service is usable before any
// administrator has been created. Existing collections are left alone.
func (s *Store) seedDefaults() error {
	seeded, err := s.hasCollection(collectionUsers)
	if err != nil {
		return err
	}
	if !seeded {
		users, err := defaultUsers()
		if err != nil {
			return err
		}
		if err := s.writeCollection(collectionUsers, users); err != nil {
			return err
		}
	}

	seeded, err = s.hasCollection(collectionConsents)
	if err != nil {
		return err
	}
	if !seeded {
		if err := s.writeCollection(collectionConsents, defaultConsents()); err != nil {
			return err
		}
	}

	seeded, err = s.hasCollection(collectionApplicants)
	if err != nil {
		return err
	}
	if !seeded {
		if err := s.writeCollection(collectionApplicants, []models.Applicant{}); err != nil {
			return err
		}
	}
	return nil
}

func defaultUsers() ([]models.User, error) {
	admin := models.User{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Name:   "Administrador",
		Email:  "admin@lgpd-system.com",
		Role:   models.RoleSuperAdm,
		Active: true,
	}
	if err := admin.SetPassword("admin123!@#"); err != nil {
		return nil, err
	}

	comercial := models.User{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		Name:   "João da Silva Santos",
		Email:  "joao@email.com",
		Role:   models.RoleComercial,
		Active: true,
	}
	if err := comercial.SetPassword("admin123!@#"); err != nil {
		return nil, err
	}

	suporte := models.User{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		Name:   "Maria Oliveira",
		Email:  "maria@email.com",
		Role:   models.RoleSuporte,
		Active: true,
	}
	if err := suporte.SetPassword("admin123!@#"); err != nil {
		return nil, err
	}

	return []models.User{admin, comercial, suporte}, nil
}

func defaultConsents() []models.ConsentRequest {
	approvedID := uuid.New()
	approvedCreated := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)
	approvedAt := time.Date(2024, 1, 12, 9, 15, 0, 0, time.UTC)

	pendingID := uuid.New()
	pendingCreated := time.Date(2024, 1, 20, 8, 30, 0, 0, time.UTC)

	return []models.ConsentRequest{
		{
			ID:           approvedID,
			DataUser:     "Seguradora XYZ",
			DataUserType: "Seguradora",
			DataOwner:    "João Silva Santos",
			CPF:          "123.456.789-00",
			DataTypes:    pq.StringArray{"CNH", "Multas", "Pontuação"},
			Purpose:      "Cálculo de prêmio de seguro veicular",
			LegalBasis:   "Consentimento do titular",
			Deadline:     "2024-06-30",
			Controller:   "Seguradora XYZ Ltda.",
			Status:       models.ConsentStatusApproved,
			CreatedAt:    approvedCreated,
			ApprovedAt:   &approvedAt,
			LastModified: approvedAt,
			Scopes:       pq.StringArray{"senatran:cnh:read", "senatran:multas:read", "senatran:pontuacao:read"},
			TokenID:      "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiIxMjMuNDU2Ljc4OS0wMCIsInNjb3BlcyI6WyJzZW5hdHJhbjpjbmg6cmVhZCIsInNlbmF0cmFuOm11bHRhczpyZWFkIiwic2VuYXRyYW46cG9udHVhY2FvOnJlYWQiXX0",
			ActionHistory: []models.ConsentAction{
				{
					ID:          uuid.New(),
					ConsentID:   approvedID,
					Action:      models.ActionCreated,
					Timestamp:   approvedCreated,
					PerformedBy: models.PerformerSystem,
					Reason:      "Solicitação de consentimento criada",
					CreatedAt:   approvedCreated,
				},
				{
					ID:          uuid.New(),
					ConsentID:   approvedID,
					Action:      models.ActionApproved,
					Timestamp:   approvedAt,
					PerformedBy: models.PerformerUser,
					Reason:      "Aprovado pelo titular dos dados",
					CreatedAt:   approvedAt,
				},
			},
		},
		{
			ID:           pendingID,
			DataUser:     "Locadora de Veículos DEF",
			DataUserType: "Locadora",
			DataOwner:    "João Silva Santos",
			CPF:          "123.456.789-00",
			DataTypes:    pq.StringArray{"CNH", "Pontuação"},
			Purpose:      "Verificação de habilitação para locação de veículo",
			LegalBasis:   "Consentimento do titular",
			Deadline:     "2024-02-28",
			Controller:   "Locadora DEF Ltda.",
			Status:       models.ConsentStatusPending,
			CreatedAt:    pendingCreated,
			LastModified: pendingCreated,
			ActionHistory: []models.ConsentAction{
				{
					ID:          uuid.New(),
					ConsentID:   pendingID,
					Action:      models.ActionCreated,
					Timestamp:   pendingCreated,
					PerformedBy: models.PerformerSystem,
					Reason:      "Solicitação de consentimento criada",
					CreatedAt:   pendingCreated,
				},
			},
		},
	}
}
