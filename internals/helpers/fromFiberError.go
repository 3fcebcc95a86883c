package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"axflo_backend/internals/configs"
)

// FromFiberError turns an error returned from a service or transaction into
// the standard error envelope. Anything that is not a *fiber.Error is logged
// and reported as a generic 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	configs.Log().Error("unhandled error",
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, "An error occurred. Please try again later.")
}

// ErrorHandler is installed as the Fiber app ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}

// AjaxFromError is FromFiberError for the action endpoints: client errors
// keep their message, everything else is logged. Always 200.
func AjaxFromError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return AjaxFail(c, fe.Message)
	}
	configs.Log().Error("unhandled error",
		zap.String("path", c.Path()),
		zap.String("action", c.FormValue("action")),
		zap.Error(err),
	)
	return AjaxFail(c, "An error occurred. Please try again later.")
}
