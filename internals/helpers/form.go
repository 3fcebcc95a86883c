package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Form helpers for urlencoded and multipart bodies.

const DateLayout = "2006-01-02"

func FormString(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

// FormStringPtr returns nil for an empty value.
func FormStringPtr(c *fiber.Ctx, key string) *string {
	v := FormString(c, key)
	if v == "" {
		return nil
	}
	return &v
}

// FormBool follows checkbox semantics: "on", "true", "1" and "yes" are true.
func FormBool(c *fiber.Ctx, key string) bool {
	switch strings.ToLower(FormString(c, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func FormInt(c *fiber.Ctx, key string, def int) int {
	n, err := strconv.Atoi(FormString(c, key))
	if err != nil {
		return def
	}
	return n
}

// FormUint returns 0 when missing or not a positive integer.
func FormUint(c *fiber.Ctx, key string) uint {
	n, err := strconv.ParseUint(FormString(c, key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func FormFloatPtr(c *fiber.Ctx, key string) *float64 {
	v := FormString(c, key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func FormIntPtr(c *fiber.Ctx, key string) *int {
	v := FormString(c, key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// FormDate parses YYYY-MM-DD. ok is false for empty or malformed input.
func FormDate(c *fiber.Ctx, key string) (time.Time, bool) {
	v := FormString(c, key)
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormDatePtr(c *fiber.Ctx, key string) *time.Time {
	if t, ok := FormDate(c, key); ok {
		return &t
	}
	return nil
}

// FormList returns every value posted under key ("ids[]" style).
func FormList(c *fiber.Ctx, key string) []string {
	var out []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		out = append(out, form.Value[key]...)
	} else {
		for _, v := range c.Request().PostArgs().PeekMulti(key) {
			out = append(out, string(v))
		}
	}
	if len(out) == 0 {
		for _, v := range c.Context().QueryArgs().PeekMulti(key) {
			out = append(out, string(v))
		}
	}

	cleaned := out[:0]
	for _, v := range out {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return cleaned
}

// FormUintList is FormList with non-numeric entries dropped.
func FormUintList(c *fiber.Ctx, key string) []uint {
	return ParseUintList(FormList(c, key))
}

func ParseUintList(raw []string) []uint {
	ids := make([]uint, 0, len(raw))
	for _, s := range raw {
		if n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil && n > 0 {
			ids = append(ids, uint(n))
		}
	}
	return ids
}

// QueryTrim reads a trimmed query param.
func QueryTrim(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.Query(key))
}
