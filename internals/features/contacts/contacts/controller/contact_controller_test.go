package controller_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axflo_backend/internals/features/contacts/contacts/controller"
	"axflo_backend/internals/features/contacts/contacts/model"
	"axflo_backend/internals/testutil"
)

func TestBulkDeleteEnvelope(t *testing.T) {
	db := testutil.NewDB(t)
	cat := model.InquiryCategoryModel{Name: "General"}
	require.NoError(t, db.Create(&cat).Error)
	rows := []model.ContactSubmissionModel{
		{Name: "Jane", Email: "jane@x.com", Message: "hi", InquiryTypeID: cat.ID},
		{Name: "John", Email: "john@x.com", Message: "hi", InquiryTypeID: cat.ID},
	}
	require.NoError(t, db.Create(&rows).Error)

	ctl := controller.NewContactController(db, nil)
	app := fiber.New()
	app.All("/bulk-delete", ctl.BulkDelete)

	call := func(method, body string) map[string]interface{} {
		req := httptest.NewRequest(method, "/bulk-delete", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var out map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	out := call(fiber.MethodGet, "")
	assert.Equal(t, map[string]interface{}{"success": false, "message": "Invalid request method."}, out)

	out = call(fiber.MethodPost, `{"contact_ids": []}`)
	assert.Equal(t, map[string]interface{}{"success": false, "message": "No contacts selected for deletion."}, out)

	out = call(fiber.MethodPost, fmt.Sprintf(`{"contact_ids": [%d, "%d"]}`, rows[0].ID, rows[1].ID))
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Successfully deleted 2 contact message(s).", out["message"])
	assert.EqualValues(t, 2, out["deleted_count"])

	var left int64
	require.NoError(t, db.Model(&model.ContactSubmissionModel{}).Count(&left).Error)
	assert.Zero(t, left)
}
