// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string   `json:"name" gorm:"size:255;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	// Serialized so the local backend can persist it. Never returned to
	// clients: handlers respond with FormatUser.
	PasswordHash string   `json:"password_hash,omitempty" gorm:"size:255"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null"`
	Active       bool     `json:"active" gorm:"not null;default:true"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// UserResponse is the client-facing shape of a User. The password hash
// never leaves the server.
type UserResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Active bool     `json:"active"`
}

func FormatUser(u *User) UserResponse {
	return UserResponse{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Active: u.Active,
	}
}

func FormatUsers(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FormatUser(&users[i]))
	}
	return out
}
