package service_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"axflo_backend/internals/features/contacts/contacts/dto"
	"axflo_backend/internals/features/contacts/contacts/model"
	"axflo_backend/internals/features/contacts/contacts/service"
	userModel "axflo_backend/internals/features/users/user/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/testutil"
)

func newCategory(t *testing.T, db *gorm.DB, name string) model.InquiryCategoryModel {
	t.Helper()
	cat := model.InquiryCategoryModel{Name: name}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func submit(t *testing.T, db *gorm.DB, catID uint, name string) *model.ContactSubmissionModel {
	t.Helper()
	row, err := service.CreateSubmission(context.Background(), db, &dto.ContactSubmitRequest{
		Name:        name,
		Email:       "jane@x.com",
		Message:     "hello",
		InquiryType: strconv.FormatUint(uint64(catID), 10),
	})
	require.NoError(t, err)
	return row
}

func TestCreateSubmission(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cat := newCategory(t, db, "Career Opportunities")

	row := submit(t, db, cat.ID, "  Jane ")
	assert.Equal(t, "Jane", row.Name)
	assert.False(t, row.Read)
	assert.Equal(t, "Career Opportunities", row.InquiryType.Name)

	_, err := service.CreateSubmission(ctx, db, &dto.ContactSubmitRequest{Name: "Jane", Email: "jane@x.com", InquiryType: "1"})
	assert.ErrorIs(t, err, service.ErrMissingFields)

	_, err = service.CreateSubmission(ctx, db, &dto.ContactSubmitRequest{Name: "Jane", Email: "jane@x.com", Message: "hi", InquiryType: "999"})
	assert.ErrorIs(t, err, service.ErrInvalidInquiryType)

	_, err = service.CreateSubmission(ctx, db, &dto.ContactSubmitRequest{Name: "Jane", Email: "jane@x.com", Message: "hi", InquiryType: "abc"})
	assert.ErrorIs(t, err, service.ErrInvalidInquiryType)

	var n int64
	require.NoError(t, db.Model(&model.ContactSubmissionModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestReadFlagLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cat := newCategory(t, db, "General")
	row := submit(t, db, cat.ID, "Jane")

	got, err := service.GetSubmission(ctx, db, row.ID)
	require.NoError(t, err)
	require.NoError(t, service.MarkRead(ctx, db, got))
	assert.True(t, got.Read)

	got, err = service.GetSubmission(ctx, db, row.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	read, err := service.ToggleRead(ctx, db, row.ID)
	require.NoError(t, err)
	assert.False(t, read)

	totals, err := service.CountTotals(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, service.Totals{Total: 1, Unread: 1, Read: 0}, totals)

	_, err = service.ToggleRead(ctx, db, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListSubmissionsFiltersAndClamps(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	a := newCategory(t, db, "A")
	b := newCategory(t, db, "B")
	submit(t, db, a.ID, "Alice")
	submit(t, db, a.ID, "Bob")
	submit(t, db, b.ID, "Carol")

	rows, total, _, err := service.ListSubmissions(ctx, db, dto.ListFilter{InquiryType: strconv.Itoa(int(a.ID))}, helpers.Paging{Page: 1, PerPage: 20, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	rows, total, _, err = service.ListSubmissions(ctx, db, dto.ListFilter{Search: "CAROL"}, helpers.Paging{Page: 1, PerPage: 20, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].InquiryType.Name)

	rows, _, p, err := service.ListSubmissions(ctx, db, dto.ListFilter{}, helpers.Paging{Page: 5, PerPage: 2, Offset: 8, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
	assert.Len(t, rows, 1)
}

func TestDeleteAndBulkDelete(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cat := newCategory(t, db, "General")
	staff := userModel.UserModel{Username: "staff", Password: "x", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(&staff).Error)

	first := submit(t, db, cat.ID, "Jane")
	second := submit(t, db, cat.ID, "John")
	third := submit(t, db, cat.ID, "Joan")
	_, err := service.AddResponse(ctx, db, first.ID, staff.ID, "On it")
	require.NoError(t, err)

	name, err := service.DeleteSubmission(ctx, db, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", name)

	var responses int64
	require.NoError(t, db.Model(&model.ContactResponseModel{}).Count(&responses).Error)
	assert.Zero(t, responses)

	n, err := service.BulkDelete(ctx, db, []uint{second.ID, third.ID, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = service.DeleteSubmission(ctx, db, first.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteCategoryRefusedWhileReferenced(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	used := newCategory(t, db, "Used")
	free := newCategory(t, db, "Free")
	submit(t, db, used.ID, "Jane")

	_, err := service.DeleteCategory(ctx, db, used.ID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Contains(t, fe.Message, "1 contact submissions")

	name, err := service.DeleteCategory(ctx, db, free.ID)
	require.NoError(t, err)
	assert.Equal(t, "Free", name)

	usage, err := service.CategoryUsage(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, usage[used.ID])

	var left int64
	require.NoError(t, db.Model(&model.InquiryCategoryModel{}).Count(&left).Error)
	assert.EqualValues(t, 1, left)
}
