// internal/models/applicant.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Applicant is a requester organization (or person) eligible to be
// selected as the data user on a new consent request. Deactivation is a
// soft toggle: inactive applicants stay in management views but are
// excluded from the requester selector.
type Applicant struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name              string    `json:"name" gorm:"size:255;not null"`
	Type              string    `json:"type" gorm:"size:100;not null"`
	CNPJ              string    `json:"cnpj,omitempty" gorm:"column:cnpj;size:18"`
	CPF               string    `json:"cpf,omitempty" gorm:"column:cpf;size:14"`
	Email             string    `json:"email" gorm:"size:255"`
	Phone             string    `json:"phone" gorm:"size:20"`
	Address           string    `json:"address" gorm:"size:255"`
	City              string    `json:"city" gorm:"size:100"`
	State             string    `json:"state" gorm:"size:2"`
	ZipCode           string    `json:"zip_code" gorm:"column:zip_code;size:9"`
	ResponsiblePerson string    `json:"responsible_person,omitempty" gorm:"column:responsible_person;size:255"`
	IsActive          bool      `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Applicant) TableName() string {
	return "applicants"
}
