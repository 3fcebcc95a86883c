package controller

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/constants"
	authRepo "axflo_backend/internals/features/users/auth/repository"
	authService "axflo_backend/internals/features/users/auth/service"
	"axflo_backend/internals/features/users/user/dto"
	userModel "axflo_backend/internals/features/users/user/model"
	userService "axflo_backend/internals/features/users/user/service"
	helpers "axflo_backend/internals/helpers"
)

const (
	profileViewPath     = "/admin-profile-view/"
	confirmDeletePhrase = "DELETE_MY_ACCOUNT"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// sessionUser loads the caller's row. The guard has already vetted the token.
func (uc *UserController) sessionUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	id, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	u, err := authRepo.FindUserByID(uc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, constants.ErrAuthRequired)
		}
		return nil, err
	}
	return u, nil
}

// target resolves :id and applies the account rule: superusers manage
// everyone, staff only themselves.
func (uc *UserController) target(c *fiber.Ctx) (viewer, target *userModel.UserModel, err error) {
	viewer, err = uc.sessionUser(c)
	if err != nil {
		return nil, nil, err
	}
	id, err := helpers.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, nil, userService.ErrUserNotFound
	}
	if id != viewer.ID && !viewer.IsSuperuser {
		return nil, nil, fiber.NewError(fiber.StatusForbidden, constants.ErrPermissionDenied)
	}
	if id == viewer.ID {
		return viewer, viewer, nil
	}
	target, err = userService.GetUser(c.UserContext(), uc.DB, id)
	if err != nil {
		return nil, nil, err
	}
	return viewer, target, nil
}

/* =========================
   USERS SCREEN
========================= */

// GET /admin-users/
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	viewer, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	users, err := userService.ListUsers(c.UserContext(), uc.DB, viewer)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "Users fetched successfully", fiber.Map{
		"users":            dto.FromUserModels(users),
		"total":            len(users),
		"can_manage_users": viewer.IsSuperuser,
	})
}

// GET /admin-users/:id/
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	_, target, err := uc.target(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"user":       dto.FromUserModel(target),
		"user_stats": dto.StatsFor(target),
	})
}

// POST /admin-users/:id/edit/
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	viewer, target, err := uc.target(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var body dto.AdminUserUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req := body.Profile()

	fieldErrs, err := userService.ValidateProfile(uc.DB.WithContext(c.UserContext()), target.ID, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if len(fieldErrs) > 0 {
		return helpers.JsonValidationError(c, fieldErrs)
	}

	var flags *dto.AdminUserUpdateRequest
	if viewer.IsSuperuser {
		flags = &body
	}
	if err := userService.ApplyProfile(c.UserContext(), uc.DB, target, req, flags); err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, fmt.Sprintf("User %s updated successfully!", target.Username), dto.FromUserModel(target))
}

// POST /admin-users/:id/delete/
// Deleting one's own account ends the session.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	viewer, target, err := uc.target(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if err := userService.DeleteUser(c.UserContext(), uc.DB, target.ID); err != nil {
		return helpers.FromFiberError(c, err)
	}
	configs.Log().Info("user deleted",
		zap.String("username", target.Username),
		zap.String("by", viewer.Username),
	)

	redirect := "/admin-users/"
	if target.ID == viewer.ID {
		authService.EndSession(c, uc.DB)
		redirect = constants.LoginPath
	}
	return helpers.JsonDeleted(c, fmt.Sprintf("User %s has been deleted successfully.", target.Username), fiber.Map{
		"id":       target.ID,
		"redirect": redirect,
	})
}

/* =========================
   PROFILE
========================= */

// GET /admin-profile-view/
func (uc *UserController) ProfileView(c *fiber.Ctx) error {
	u, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"user_profile": dto.FromUserModel(u),
		"user_stats":   dto.StatsFor(u),
		"current_page": "profile_view",
	})
}

// GET /admin-profile-edit/
func (uc *UserController) ProfileEditForm(c *fiber.Ctx) error {
	u, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"user_profile": dto.FromUserModel(u),
		"current_page": "profile_edit",
	})
}

// POST /admin-profile-edit/
func (uc *UserController) ProfileEdit(c *fiber.Ctx) error {
	u, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()

	fieldErrs, err := userService.ValidateProfile(uc.DB.WithContext(c.UserContext()), u.ID, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if len(fieldErrs) > 0 {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	if err := userService.ApplyProfile(c.UserContext(), uc.DB, u, &req, nil); err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, "Profile updated successfully!", fiber.Map{
		"user_profile": dto.FromUserModel(u),
		"redirect":     profileViewPath,
	})
}

// GET /admin-profile-password/
func (uc *UserController) PasswordForm(c *fiber.Ctx) error {
	u, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"user_profile": dto.FromUserModel(u),
		"current_page": "profile_password",
		"fields":       []string{"old_password", "new_password1", "new_password2"},
	})
}

// POST /admin-profile-password/
// The session is re-issued so the caller stays logged in.
func (uc *UserController) PasswordChange(c *fiber.Ctx) error {
	u, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	fieldErrs, err := userService.ChangePassword(c.UserContext(), uc.DB, u, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if len(fieldErrs) > 0 {
		return helpers.JsonValidationError(c, fieldErrs)
	}

	authService.EndSession(c, uc.DB)
	token, err := authService.IssueSession(c, u)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, "Your password was successfully updated!", fiber.Map{
		"access_token": token,
		"redirect":     profileViewPath,
	})
}

// GET /admin-profile-delete/
func (uc *UserController) DeleteForm(c *fiber.Ctx) error {
	u, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"user_profile":   dto.FromUserModel(u),
		"current_page":   "profile_delete",
		"confirm_phrase": confirmDeletePhrase,
	})
}

// POST /admin-profile-delete/
func (uc *UserController) ProfileDelete(c *fiber.Ctx) error {
	u, err := uc.sessionUser(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ConfirmDelete != confirmDeletePhrase {
		return helpers.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Please type \"%s\" to confirm account deletion.", confirmDeletePhrase))
	}

	username := u.Username
	if err := userService.DeleteUser(c.UserContext(), uc.DB, u.ID); err != nil {
		return helpers.FromFiberError(c, err)
	}
	authService.EndSession(c, uc.DB)
	return helpers.JsonDeleted(c, fmt.Sprintf("Account %s has been successfully deleted.", username), fiber.Map{
		"id":       u.ID,
		"redirect": constants.LoginPath,
	})
}
