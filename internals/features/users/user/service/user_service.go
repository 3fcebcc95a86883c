package service

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	blogModel "axflo_backend/internals/features/blog/articles/model"
	contactModel "axflo_backend/internals/features/contacts/contacts/model"
	contentModel "axflo_backend/internals/features/home/contents/model"
	authHelper "axflo_backend/internals/features/users/auth/helper"
	authRepo "axflo_backend/internals/features/users/auth/repository"
	"axflo_backend/internals/features/users/user/dto"
	userModel "axflo_backend/internals/features/users/user/model"
	helpers "axflo_backend/internals/helpers"
)

const (
	msgUsernameRequired = "Username is required."
	msgUsernameTaken    = "Username already exists."
	msgEmailInvalid     = "Invalid email format."
	msgEmailTaken       = "Email already exists."

	msgFieldRequired    = "This field is required."
	msgOldPasswordWrong = "Your old password was entered incorrectly. Please enter it again."
	msgPasswordMismatch = "The two password fields didn’t match."
	msgPasswordTooShort = "This password is too short. It must contain at least 8 characters."
)

var ErrUserNotFound = fiber.NewError(fiber.StatusNotFound, "User not found")

// ListUsers returns every account for a superuser and only the viewer's own
// row otherwise. Newest first.
func ListUsers(ctx context.Context, db *gorm.DB, viewer *userModel.UserModel) ([]userModel.UserModel, error) {
	q := db.WithContext(ctx).Model(&userModel.UserModel{})
	if !viewer.IsSuperuser {
		q = q.Where("id = ?", viewer.ID)
	}
	var users []userModel.UserModel
	if err := q.Order("date_joined DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func GetUser(ctx context.Context, db *gorm.DB, id uuid.UUID) (*userModel.UserModel, error) {
	u, err := authRepo.FindUserByID(db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ValidateProfile returns field errors keyed by form field. Empty map when
// the request is acceptable.
func ValidateProfile(db *gorm.DB, userID uuid.UUID, req *dto.ProfileUpdateRequest) (map[string][]string, error) {
	errs := map[string][]string{}

	if req.Username == "" {
		errs["username"] = append(errs["username"], msgUsernameRequired)
	} else {
		taken, err := authRepo.IsUsernameTaken(db, req.Username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs["username"] = append(errs["username"], msgUsernameTaken)
		}
	}

	if req.Email != "" {
		if !helpers.IsValidEmail(req.Email) {
			errs["email"] = append(errs["email"], msgEmailInvalid)
		} else {
			taken, err := authRepo.IsEmailTaken(db, req.Email, userID)
			if err != nil {
				return nil, err
			}
			if taken {
				errs["email"] = append(errs["email"], msgEmailTaken)
			}
		}
	}
	return errs, nil
}

// ApplyProfile writes the editable profile fields. flags is nil for
// self-service edits.
func ApplyProfile(ctx context.Context, db *gorm.DB, u *userModel.UserModel, req *dto.ProfileUpdateRequest, flags *dto.AdminUserUpdateRequest) error {
	u.Username = req.Username
	u.Email = req.Email
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	if flags != nil {
		if flags.IsStaff != nil {
			u.IsStaff = *flags.IsStaff
		}
		if flags.IsSuperuser != nil {
			u.IsSuperuser = *flags.IsSuperuser
		}
		if flags.IsActive != nil {
			u.IsActive = *flags.IsActive
		}
	}
	if err := u.Validate(); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	err := db.WithContext(ctx).Model(u).Select(
		"username", "email", "first_name", "last_name", "is_staff", "is_superuser", "is_active",
	).Updates(u).Error
	if helpers.IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusConflict, msgUsernameTaken)
	}
	return err
}

// ChangePassword checks the form in the same order as the password change
// form: required fields, old password, match, then strength.
func ChangePassword(ctx context.Context, db *gorm.DB, u *userModel.UserModel, req *dto.PasswordChangeRequest) (map[string][]string, error) {
	errs := map[string][]string{}
	if req.OldPassword == "" {
		errs["old_password"] = []string{msgFieldRequired}
	}
	if req.NewPassword1 == "" {
		errs["new_password1"] = []string{msgFieldRequired}
	}
	if req.NewPassword2 == "" {
		errs["new_password2"] = []string{msgFieldRequired}
	}
	if req.OldPassword != "" && authHelper.CheckPasswordHash(u.Password, req.OldPassword) != nil {
		errs["old_password"] = []string{msgOldPasswordWrong}
	}
	if req.NewPassword1 != "" && req.NewPassword2 != "" {
		if req.NewPassword1 != req.NewPassword2 {
			errs["new_password2"] = []string{msgPasswordMismatch}
		} else if len([]rune(req.NewPassword2)) < authHelper.MinPasswordLength {
			errs["new_password2"] = []string{msgPasswordTooShort}
		}
	}
	if len(errs) > 0 {
		return errs, nil
	}

	hash, err := authHelper.HashPassword(req.NewPassword1)
	if err != nil {
		return nil, err
	}
	if err := authRepo.UpdateUserPassword(db.WithContext(ctx), u.ID, hash); err != nil {
		return nil, err
	}
	u.Password = hash
	return nil, nil
}

// DeleteUser removes the account together with the rows that cascade from
// it (contact responses, authored articles). Page contents keep their text
// and lose the editor reference.
func DeleteUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_member_id = ?", userID).
			Delete(&contactModel.ContactResponseModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", userID).
			Delete(&blogModel.NewsArticleModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&contentModel.PageContentModel{}).
			Where("updated_by_id = ?", userID).
			UpdateColumn("updated_by_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", userID).Delete(&userModel.UserModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
