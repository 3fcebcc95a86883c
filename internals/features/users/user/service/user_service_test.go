package service_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	blogModel "axflo_backend/internals/features/blog/articles/model"
	contactModel "axflo_backend/internals/features/contacts/contacts/model"
	contentModel "axflo_backend/internals/features/home/contents/model"
	authHelper "axflo_backend/internals/features/users/auth/helper"
	"axflo_backend/internals/features/users/user/dto"
	userModel "axflo_backend/internals/features/users/user/model"
	"axflo_backend/internals/features/users/user/service"
	"axflo_backend/internals/testutil"
)

func createUser(t *testing.T, db *gorm.DB, name, password string, super bool) *userModel.UserModel {
	t.Helper()
	hash, err := authHelper.HashPassword(password)
	require.NoError(t, err)
	u := &userModel.UserModel{Username: name, Email: name + "@axflo.test", Password: hash, IsStaff: true, IsSuperuser: super, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDeleteUserCascades(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	editor := createUser(t, db, "editor", "secret-pass", false)
	other := createUser(t, db, "other", "secret-pass", false)

	cat := contactModel.InquiryCategoryModel{Name: "General"}
	require.NoError(t, db.Create(&cat).Error)
	sub := contactModel.ContactSubmissionModel{Name: "Jane", Email: "jane@x.com", InquiryTypeID: cat.ID, Message: "hello"}
	require.NoError(t, db.Create(&sub).Error)
	require.NoError(t, db.Create(&contactModel.ContactResponseModel{ContactSubmissionID: sub.ID, ResponseText: "hi", StaffMemberID: editor.ID}).Error)
	require.NoError(t, db.Create(&contactModel.ContactResponseModel{ContactSubmissionID: sub.ID, ResponseText: "hey", StaffMemberID: other.ID}).Error)

	require.NoError(t, db.Create(&blogModel.NewsArticleModel{Title: "By editor", Content: "x", AuthorID: &editor.ID}).Error)
	require.NoError(t, db.Create(&blogModel.NewsArticleModel{Title: "By other", Content: "x", AuthorID: &other.ID}).Error)

	page := contentModel.PageContentModel{PageName: "about", Section: "intro", Content: "text", UpdatedByID: &editor.ID}
	require.NoError(t, db.Create(&page).Error)

	require.NoError(t, service.DeleteUser(ctx, db, editor.ID))

	assert.EqualValues(t, 1, count(t, db, &userModel.UserModel{}))
	assert.EqualValues(t, 1, count(t, db, &contactModel.ContactResponseModel{}))
	assert.EqualValues(t, 1, count(t, db, &blogModel.NewsArticleModel{}))
	assert.EqualValues(t, 1, count(t, db, &contactModel.ContactSubmissionModel{}))

	var kept contentModel.PageContentModel
	require.NoError(t, db.First(&kept, page.ID).Error)
	assert.Nil(t, kept.UpdatedByID)
	assert.Equal(t, "text", kept.Content)

	err := service.DeleteUser(ctx, db, uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	u := createUser(t, db, "staff", "old-password", false)

	errs, err := service.ChangePassword(ctx, db, u, &dto.PasswordChangeRequest{})
	require.NoError(t, err)
	assert.Len(t, errs, 3)

	errs, err = service.ChangePassword(ctx, db, u, &dto.PasswordChangeRequest{
		OldPassword: "wrong", NewPassword1: "new-password", NewPassword2: "new-password",
	})
	require.NoError(t, err)
	assert.Contains(t, errs["old_password"][0], "incorrectly")

	errs, err = service.ChangePassword(ctx, db, u, &dto.PasswordChangeRequest{
		OldPassword: "old-password", NewPassword1: "new-password", NewPassword2: "different",
	})
	require.NoError(t, err)
	assert.Contains(t, errs["new_password2"][0], "didn’t match")

	errs, err = service.ChangePassword(ctx, db, u, &dto.PasswordChangeRequest{
		OldPassword: "old-password", NewPassword1: "short", NewPassword2: "short",
	})
	require.NoError(t, err)
	assert.Contains(t, errs["new_password2"][0], "too short")

	errs, err = service.ChangePassword(ctx, db, u, &dto.PasswordChangeRequest{
		OldPassword: "old-password", NewPassword1: "new-password", NewPassword2: "new-password",
	})
	require.NoError(t, err)
	assert.Empty(t, errs)

	var stored userModel.UserModel
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.NoError(t, authHelper.CheckPasswordHash(stored.Password, "new-password"))
}

func TestValidateProfileAndListUsers(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	admin := createUser(t, db, "admin", "password1", true)
	staff := createUser(t, db, "staff", "password1", false)

	errs, err := service.ValidateProfile(db, staff.ID, &dto.ProfileUpdateRequest{Username: "admin", Email: "admin@axflo.test"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Username already exists."}, errs["username"])
	assert.Equal(t, []string{"Email already exists."}, errs["email"])

	errs, err = service.ValidateProfile(db, staff.ID, &dto.ProfileUpdateRequest{Username: "staff", Email: "bad"})
	require.NoError(t, err)
	assert.Empty(t, errs["username"])
	assert.Equal(t, []string{"Invalid email format."}, errs["email"])

	all, err := service.ListUsers(ctx, db, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := service.ListUsers(ctx, db, staff)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, staff.ID, own[0].ID)

	_, err = service.GetUser(ctx, db, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}
