package route_test

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axflo_backend/internals/features/contacts/contacts/model"
	"axflo_backend/internals/features/contacts/contacts/route"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/testutil"
)

func TestPublicContactSubmit(t *testing.T) {
	db := testutil.NewDB(t)
	cat := model.InquiryCategoryModel{Name: "Career Opportunities"}
	require.NoError(t, db.Create(&cat).Error)

	app := fiber.New()
	route.ContactPublicRoutes(app, db, helpers.NewLeadNotifier(""))

	post := func(form url.Values) map[string]interface{} {
		req := httptest.NewRequest(fiber.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body
	}

	body := post(url.Values{
		"name":         {"Jane"},
		"email":        {"jane@x.com"},
		"message":      {"hello"},
		"inquiry_type": {strconv.FormatUint(uint64(cat.ID), 10)},
	})
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Thank you for your message! We will get back to you soon.", body["message"])

	var row model.ContactSubmissionModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "Jane", row.Name)
	assert.False(t, row.Read)

	body = post(url.Values{"name": {"Jane"}, "email": {"jane@x.com"}})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Please fill in all required fields.", body["message"])

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/contact", nil))
	require.NoError(t, err)
	var page struct {
		Data struct {
			Categories []map[string]interface{} `json:"inquiry_categories"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page.Data.Categories, 1)
	assert.Equal(t, "Career Opportunities", page.Data.Categories[0]["name"])
}
