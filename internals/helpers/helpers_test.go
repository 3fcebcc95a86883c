package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":            "hello-world",
		"  Café  Déjà vu!! ":     "cafe-deja-vu",
		"Safety & Environment":   "safety-environment",
		"---":                    "item",
		"Oil -- Spill__Response": "oil-spill-response",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in, 0), in)
	}
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}

func TestTrimForSuffix(t *testing.T) {
	assert.Equal(t, "abcd", trimForSuffix("abcdef", "-2", 6))
	assert.Equal(t, "x", trimForSuffix("abc", "-123456", 4))
}

type validateSample struct {
	Name   string `json:"name" validate:"required,max=5"`
	Email  string `json:"email" validate:"omitempty,email"`
	Status string `json:"status" validate:"oneof=NEW OLD"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(validateSample{Name: "ok", Status: "NEW"}))

	errs := ValidateStruct(validateSample{Name: "too long name", Email: "nope", Status: "X"})
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Ensure this value has at most 5 characters."}, errs["name"])
	assert.Equal(t, []string{"Enter a valid email address."}, errs["email"])
	assert.Equal(t, []string{"Select a valid choice."}, errs["status"])

	errs = ValidateStruct(validateSample{Status: "OLD"})
	assert.Equal(t, []string{"This field is required."}, errs["name"])
}

func TestFlexibleIDs(t *testing.T) {
	var body struct {
		IDs FlexibleIDs `json:"ids"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ids":[1,"2"," 3 ","x",0,-4]}`), &body))
	assert.Equal(t, FlexibleIDs{1, 2, 3}, body.IDs)

	assert.Error(t, json.Unmarshal([]byte(`{"ids":"1,2"}`), &body))
}

func TestPagingClamp(t *testing.T) {
	p := Paging{Page: 9, PerPage: 20, Offset: 160, Limit: 20}.Clamp(45)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 40, p.Offset)

	same := Paging{Page: 2, PerPage: 20, Offset: 20, Limit: 20}
	assert.Equal(t, same, same.Clamp(45))
	assert.Equal(t, same, same.Clamp(0))

	pg := BuildPagination(45, Paging{Page: 3, PerPage: 20})
	assert.Equal(t, 3, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	assert.Equal(t, 1, BuildPaginationFromPage(0, 1, 20).TotalPages)
}

func TestParseJSONObject(t *testing.T) {
	m, err := ParseJSONObject("environmental impact", `{"co2_reduced": 12.5}`)
	require.NoError(t, err)
	assert.Equal(t, 12.5, FloatFromMap(m, "co2_reduced"))

	m, err = ParseJSONObject("key statistics", "  ")
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.Equal(t, "{}", JSONMapString(m))

	_, err = ParseJSONObject("environmental impact", "{not valid json")
	require.Error(t, err)
	assert.Equal(t, "Invalid JSON format for environmental impact", err.Error())

	_, err = ParseJSONObject("environmental impact", `[1,2]`)
	assert.Error(t, err)
}

func TestParseJSONList(t *testing.T) {
	l, err := ParseJSONList("gallery images", `["a.jpg", "b.jpg"]`)
	require.NoError(t, err)
	assert.JSONEq(t, `["a.jpg","b.jpg"]`, string(l))

	l, err = ParseJSONList("gallery images", "")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(l))

	_, err = ParseJSONList("gallery images", `{"a":1}`)
	assert.Error(t, err)
}

func TestFloatFromMap(t *testing.T) {
	m := map[string]interface{}{"a": "3.5", "b": 2.0, "c": "n/a"}
	assert.Equal(t, 3.5, FloatFromMap(m, "a"))
	assert.Equal(t, 2.0, FloatFromMap(m, "b"))
	assert.Zero(t, FloatFromMap(m, "c"))
	assert.Zero(t, FloatFromMap(m, "missing"))
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, []string{"Degree", "5 years", "HSE"}, SplitRequirements("Degree\n5 years; HSE,,", 0))
	assert.Equal(t, []string{"Degree"}, SplitRequirements("Degree\n5 years", 1))
	assert.Equal(t, []string{"oil", "marine"}, SplitTags(" oil, ,marine "))

	assert.Equal(t, "Hello World", HTMLToText("<p>Hello</p><script>x()</script><p>World</p>"))
	assert.Equal(t, "abc", Truncate("abcdef", 3))

	ex := Excerpt("<p>"+strings.Repeat("word ", 100)+"</p>", 50)
	assert.True(t, strings.HasSuffix(ex, "..."))
	assert.LessOrEqual(t, len(ex), 50)

	first, last := SplitFullName("  Jane  van Dyke ")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "van Dyke", last)

	assert.True(t, IsValidEmail("jane@x.com"))
	assert.False(t, IsValidEmail("jane"))
}

func TestPgErrorClassification(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: subscribers.email")))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}

func TestSearchAnyBlankTermIsNoop(t *testing.T) {
	assert.Nil(t, SearchAny(nil, "   ", "name"))
}

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

func TestActionRouter(t *testing.T) {
	app := fiber.New()
	router := NewActionRouter("action").
		On("get", func(c *fiber.Ctx) error { return AjaxOK(c, fiber.Map{"got": true}) }).
		On("delete", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Achievement not found") })
	app.Post("/x", router.Handle)
	app.Post("/y", func(c *fiber.Ctx) error {
		return AjaxFromError(c, fiber.NewError(fiber.StatusNotFound, "Achievement not found"))
	})
	app.Post("/z", func(c *fiber.Ctx) error { return AjaxFromError(c, errors.New("db down")) })

	assert.Equal(t, []string{"get", "delete"}, router.Actions())

	post := func(path string, form url.Values) map[string]interface{} {
		req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		return decodeBody(t, resp.Body)
	}

	body := post("/x", url.Values{"action": {"get"}})
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["got"])

	body = post("/x", url.Values{"action": {"explode"}})
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid action", body["error"])

	body = post("/y", url.Values{})
	assert.Equal(t, "Achievement not found", body["error"])

	body = post("/z", url.Values{})
	assert.Equal(t, "An error occurred. Please try again later.", body["error"])
}

func TestErrorHandlerEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Article not found.") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: relation does not exist") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Article not found.", body["message"])
	assert.Equal(t, false, body["success"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body = decodeBody(t, resp.Body)
	assert.NotContains(t, body["message"], "relation")
}

func TestFormUintListAndIsXHR(t *testing.T) {
	app := fiber.New()
	app.Post("/ids", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ids": FormUintList(c, "ids[]"), "xhr": IsXHR(c)})
	})

	form := url.Values{"ids[]": {"3", "x", " 7 ", "0"}}
	req := httptest.NewRequest(fiber.MethodPost, "/ids", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, []interface{}{3.0, 7.0}, body["ids"])
	assert.Equal(t, true, body["xhr"])
}
