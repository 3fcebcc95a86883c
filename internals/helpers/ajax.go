package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ActionRouter dispatches a single AJAX endpoint to one handler per value of
// a discriminator field ("action" for the showcase modules).
//
//	router := helper.NewActionRouter("action").
//		On("create", ctl.Create).
//		On("delete", ctl.Delete)
//	app.Post("/admin-achievements", router.Handle)
type ActionRouter struct {
	field    string
	handlers map[string]fiber.Handler
	order    []string
}

func NewActionRouter(field string) *ActionRouter {
	return &ActionRouter{field: field, handlers: map[string]fiber.Handler{}}
}

func (r *ActionRouter) On(action string, h fiber.Handler) *ActionRouter {
	if _, exists := r.handlers[action]; !exists {
		r.order = append(r.order, action)
	}
	r.handlers[action] = h
	return r
}

// Actions lists the registered actions in registration order.
func (r *ActionRouter) Actions() []string {
	return append([]string(nil), r.order...)
}

func (r *ActionRouter) Handle(c *fiber.Ctx) error {
	action := strings.TrimSpace(c.FormValue(r.field))
	h, ok := r.handlers[action]
	if !ok {
		return AjaxFail(c, "Invalid action")
	}
	return h(c)
}
