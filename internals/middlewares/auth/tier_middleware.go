package auth

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/constants"
)

// RequireTier must run after AuthMiddleware. Staff tier accepts staff or
// superuser accounts; superuser tier accepts only superusers.
func RequireTier(tier constants.Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(constants.LocUserID) == nil {
			return deny(c, fiber.StatusUnauthorized)
		}
		isStaff, _ := c.Locals(constants.LocIsStaff).(bool)
		isSuper, _ := c.Locals(constants.LocIsSuperuser).(bool)

		allowed := false
		switch tier {
		case constants.TierSuperuser:
			allowed = isSuper
		default:
			allowed = isStaff || isSuper
		}
		if !allowed {
			return deny(c, fiber.StatusForbidden)
		}
		return c.Next()
	}
}

// Tiered prefixes handlers with the session guard for one route:
//
//	r.Get("/admin-contacts", authMw.Tiered(db, constants.TierStaff, ctl.List)...)
func Tiered(db *gorm.DB, tier constants.Tier, handlers ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(handlers)+2)
	out = append(out, AuthMiddleware(db), RequireTier(tier))
	return append(out, handlers...)
}
