package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"axflo_backend/internals/features/users/auth/service"
	helpers "axflo_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) LoginStatus(c *fiber.Ctx) error { return service.LoginStatus(ac.DB, c) }
func (ac *AuthController) Login(c *fiber.Ctx) error       { return service.Login(ac.DB, c) }
func (ac *AuthController) Register(c *fiber.Ctx) error    { return service.Register(ac.DB, c) }
func (ac *AuthController) Logout(c *fiber.Ctx) error      { return service.Logout(ac.DB, c) }

// GET /admin-register/
func (ac *AuthController) RegisterForm(c *fiber.Ctx) error {
	return helpers.JsonOK(c, "Admin registration", fiber.Map{
		"fields": []string{"username", "email", "password", "password_confirm"},
	})
}
