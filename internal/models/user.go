package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (p UserPatch) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if p.Username != nil {
		changes["username"] = *p.Username
	}
	if p.Email != nil {
		changes["email"] = *p.Email
	}
	return changes
}
