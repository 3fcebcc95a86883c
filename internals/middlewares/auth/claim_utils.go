package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
	helpers "axflo_backend/internals/helpers"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if cookieTok := c.Cookies(helpers.AccessTokenCookie); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("no token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("empty token")
	}
	return tok, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return fmt.Errorf("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exp format")
		}
		expUnix = n
	default:
		return fmt.Errorf("invalid exp type")
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if time.Now().UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	idRaw, ok := claims["id"]
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	s, ok := idRaw.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid user id type")
	}
	return uuid.Parse(strings.TrimSpace(s))
}

/* ======== Session user ======== */

type sessionUser struct {
	ID          uuid.UUID
	Username    string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
}

// Flags are read from the row, not the token, so a demotion takes effect
// on the next request.
func loadSessionUser(db *gorm.DB, userID uuid.UUID) (*sessionUser, error) {
	var u sessionUser
	err := db.Table("users").
		Select("id, username, is_active, is_staff, is_superuser").
		Where("id = ?", userID).
		Take(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func storeSessionToLocals(c *fiber.Ctx, u *sessionUser) {
	c.Locals(constants.LocUserID, u.ID.String())
	c.Locals(constants.LocUserName, u.Username)
	c.Locals(constants.LocIsStaff, u.IsStaff)
	c.Locals(constants.LocIsSuperuser, u.IsSuperuser)
}
