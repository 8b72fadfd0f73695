// internal/models/consent.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ConsentRequest is one authorization request for a data-owner's
// personal data. The status column never moves past approved: a revoked
// record keeps status=approved and carries RevokedAt, which is how the
// hosted schema represents revocation.
type ConsentRequest struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	DataUser      string          `json:"data_user" gorm:"column:data_user;size:255;not null"`
	DataUserType  string          `json:"data_user_type" gorm:"column:data_user_type;size:100"`
	DataOwner     string          `json:"data_owner" gorm:"column:data_owner;size:255;not null"`
	CPF           string          `json:"cpf" gorm:"column:cpf;size:14;not null;index"`
	DataTypes     pq.StringArray  `json:"data_types" gorm:"column:data_types;type:text[];not null"`
	Purpose       string          `json:"purpose" gorm:"type:text;not null"`
	LegalBasis    string          `json:"legal_basis" gorm:"column:legal_basis;size:255"`
	Deadline      string          `json:"deadline" gorm:"size:10"`
	Controller    string          `json:"controller" gorm:"size:255"`
	Status        ConsentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time       `json:"created_at"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	RejectedAt    *time.Time      `json:"rejected_at,omitempty"`
	RevokedAt     *time.Time      `json:"revoked_at,omitempty"`
	LastModified  time.Time       `json:"last_modified" gorm:"column:last_modified;not null"`
	Scopes        pq.StringArray  `json:"scopes,omitempty" gorm:"type:text[]"`
	TokenID       string          `json:"token_id,omitempty" gorm:"column:token_id;type:text"`
	ActionHistory []ConsentAction `json:"action_history" gorm:"foreignKey:ConsentID;references:ID"`
}

func (ConsentRequest) TableName() string {
	return "consent_requests"
}

// Revoked reports the record's effective revocation state. Revocation is
// an overlay on an approved record, not a fourth status value.
func (c *ConsentRequest) Revoked() bool {
	return c.RevokedAt != nil
}

// EffectiveStatus folds the revocation overlay into a single label for
// display and reporting.
func (c *ConsentRequest) EffectiveStatus() string {
	if c.Revoked() {
		return "revoked"
	}
	return string(c.Status)
}

// ConsentAction is one append-only audit entry. Immutable once written.
type ConsentAction struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ConsentID   uuid.UUID  `json:"consent_id" gorm:"type:uuid;not null;index"`
	Action      ActionKind `json:"action" gorm:"type:varchar(20);not null"`
	Timestamp   time.Time  `json:"timestamp" gorm:"not null"`
	PerformedBy Performer  `json:"performed_by" gorm:"column:performed_by;type:varchar(10);not null"`
	Reason      string     `json:"reason,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (ConsentAction) TableName() string {
	return "consent_actions"
}
