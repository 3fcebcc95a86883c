package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/constants"
	"axflo_backend/internals/features/users/user/model"
	helpers "axflo_backend/internals/helpers"
	"axflo_backend/internals/testutil"
)

const testSecret = "guard-test-secret"

func guardedApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendString("in") }
	app.Get("/admin-contacts", Tiered(db, constants.TierStaff, ok)...)
	app.Get("/admin-users", Tiered(db, constants.TierSuperuser, ok)...)
	return app
}

func seedUser(t *testing.T, db *gorm.DB, name string, staff, super, active bool) string {
	t.Helper()
	u := model.UserModel{Username: name, Password: "x", IsStaff: staff, IsSuperuser: super, IsActive: active}
	require.NoError(t, db.Create(&u).Error)
	tok, err := helpers.SignAccessToken(testSecret, u.ID, u.Username, staff, super, time.Now(), time.Hour)
	require.NoError(t, err)
	return tok
}

func get(t *testing.T, app *fiber.App, path, token string, xhr bool) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if xhr {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	if resp.StatusCode == fiber.StatusFound {
		assert.Equal(t, constants.LoginPath, resp.Header.Get(fiber.HeaderLocation))
	}
	return resp.StatusCode
}

func TestGuardTiers(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = testSecret
	t.Cleanup(func() { configs.JWTSecret = prev })

	db := testutil.NewDB(t)
	app := guardedApp(db)

	staff := seedUser(t, db, "staff", true, false, true)
	super := seedUser(t, db, "root", false, true, true)
	plain := seedUser(t, db, "visitor", false, false, true)
	inactive := seedUser(t, db, "gone", true, false, false)

	assert.Equal(t, fiber.StatusFound, get(t, app, "/admin-contacts", "", false))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin-contacts", "", true))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin-contacts", "garbage", true))

	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin-contacts", staff, false))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin-contacts", super, false))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin-contacts", plain, true))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin-contacts", inactive, true))

	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin-users", staff, true))
	assert.Equal(t, fiber.StatusFound, get(t, app, "/admin-users", staff, false))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin-users", super, false))
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = testSecret
	t.Cleanup(func() { configs.JWTSecret = prev })

	db := testutil.NewDB(t)
	u := model.UserModel{Username: "late", Password: "x", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	tok, err := helpers.SignAccessToken(testSecret, u.ID, u.Username, true, false, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, get(t, guardedApp(db), "/admin-contacts", tok, true))
}
