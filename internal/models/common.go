// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type ConsentStatus string

const (
	ConsentStatusPending  ConsentStatus = "pending"
	ConsentStatusApproved ConsentStatus = "approved"
	ConsentStatusRejected ConsentStatus = "rejected"
)

type ActionKind string

const (
	ActionCreated  ActionKind = "created"
	ActionApproved ActionKind = "approved"
	ActionRejected ActionKind = "rejected"
	ActionRevoked  ActionKind = "revoked"
)

type Performer string

const (
	PerformerUser   Performer = "user"
	PerformerSystem Performer = "system"
)

type UserRole string

const (
	RoleSuperAdm  UserRole = "superAdm"
	RoleComercial UserRole = "comercial"
	RoleSuporte   UserRole = "suporte"
	RoleDataOwner UserRole = "data_owner"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdm, RoleComercial, RoleSuporte, RoleDataOwner:
		return true
	}
	return false
}
