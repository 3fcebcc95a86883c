package dto

import (
	"strings"
	"time"

	uModel "axflo_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// ProfileUpdateRequest is posted by /admin-profile-edit/ and by the user
// edit screen.
type ProfileUpdateRequest struct {
	Username  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

func (r *ProfileUpdateRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
}

// AdminUserUpdateRequest adds the tier flags, which only a superuser may set.
// Form posts send the flags as "true"/"false".
type AdminUserUpdateRequest struct {
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	IsStaff     *bool  `json:"is_staff" form:"is_staff"`
	IsSuperuser *bool  `json:"is_superuser" form:"is_superuser"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
}

func (r *AdminUserUpdateRequest) Profile() *ProfileUpdateRequest {
	p := &ProfileUpdateRequest{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
	p.Normalize()
	return p
}

// PasswordChangeRequest uses the field names of the password change form.
type PasswordChangeRequest struct {
	OldPassword  string `json:"old_password" form:"old_password"`
	NewPassword1 string `json:"new_password1" form:"new_password1"`
	NewPassword2 string `json:"new_password2" form:"new_password2"`
}

type DeleteAccountRequest struct {
	ConfirmDelete string `json:"confirm_delete" form:"confirm_delete"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `json:"date_joined"`
}

// UserStats backs the profile page side panel.
type UserStats struct {
	TotalLogins string     `json:"total_logins"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `json:"date_joined"`
	IsSuperuser bool       `json:"is_superuser"`
	IsStaff     bool       `json:"is_staff"`
	IsActive    bool       `json:"is_active"`
}

func FromUserModel(u *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		LastLogin:   u.LastLogin,
		DateJoined:  u.DateJoined,
	}
}

func FromUserModels(users []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromUserModel(&users[i]))
	}
	return out
}

// StatsFor: login history is not tracked, hence "N/A".
func StatsFor(u *uModel.UserModel) UserStats {
	return UserStats{
		TotalLogins: "N/A",
		LastLogin:   u.LastLogin,
		DateJoined:  u.DateJoined,
		IsSuperuser: u.IsSuperuser,
		IsStaff:     u.IsStaff,
		IsActive:    u.IsActive,
	}
}
