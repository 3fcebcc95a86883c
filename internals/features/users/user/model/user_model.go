package model

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = validator.New()

// UserModel is a back-office account. Public visitors never have one.
type UserModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string     `gorm:"size:150;not null;uniqueIndex" json:"username" validate:"required,max=150"`
	Email       string     `gorm:"size:254;index" json:"email" validate:"omitempty,email,max=254"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	FirstName   string     `gorm:"size:150" json:"first_name" validate:"max=150"`
	LastName    string     `gorm:"size:150" json:"last_name" validate:"max=150"`
	IsStaff     bool       `gorm:"not null" json:"is_staff"`
	IsSuperuser bool       `gorm:"not null" json:"is_superuser"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `gorm:"autoCreateTime" json:"date_joined"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName falls back to the username.
func (u *UserModel) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

// CanAccessAdmin mirrors the back-office gate: staff or superuser, and active.
func (u *UserModel) CanAccessAdmin() bool {
	return u.IsActive && (u.IsStaff || u.IsSuperuser)
}

// Validate checks the editable profile fields.
func (u *UserModel) Validate() error {
	if err := validate.Struct(u); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			switch fe.Tag() {
			case "required":
				return errors.New(fe.Field() + " is required.")
			case "email":
				return errors.New("Invalid email format.")
			default:
				return errors.New(fe.Field() + " is invalid.")
			}
		}
		return err
	}
	return nil
}
