package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/features/newsletters/newsletters/dto"
	"axflo_backend/internals/features/newsletters/newsletters/service"
	helpers "axflo_backend/internals/helpers"
)

const (
	subscribersPerPage = 20
	newslettersPerPage = 15
	newslettersPath    = "/admin-newsletters/"
	categoriesPath     = "/admin-newsletter-categories/"
)

type NewsletterController struct {
	DB *gorm.DB
}

func NewNewsletterController(db *gorm.DB) *NewsletterController {
	return &NewsletterController{DB: db}
}

// ajaxOrJSON answers XHR callers with {success, message} and everyone else
// with the standard envelope.
func ajaxOrJSON(c *fiber.Ctx, msg string, data fiber.Map) error {
	if helpers.IsXHR(c) {
		return helpers.AjaxMessage(c, msg)
	}
	return helpers.JsonDeleted(c, msg, data)
}

// refusal reports a business-rule refusal. XHR callers get a 200 with
// success=false.
func refusal(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if helpers.IsXHR(c) && errors.As(err, &fe) && fe.Code == fiber.StatusConflict {
		return helpers.AjaxFailMessage(c, fe.Message)
	}
	return helpers.FromFiberError(c, err)
}

/* =========================
   PUBLIC
========================= */

// POST /newsletter/subscribe
// Always 200; the outcome is in success/message.
func (nc *NewsletterController) Subscribe(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return helpers.PublicEnvelope(c, false, "Invalid request method.")
	}
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.PublicEnvelope(c, false, service.MsgEmailRequired)
	}
	req.InterestIDs = helpers.FormUintList(c, "interests")

	_, err := service.Subscribe(c.UserContext(), nc.DB, &req)
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrEmailInvalid),
		errors.Is(err, service.ErrAlreadySubscribed):
		return helpers.PublicEnvelope(c, false, err.Error())
	case err != nil:
		configs.Log().Error("newsletter subscribe failed", zap.Error(err))
		return helpers.PublicEnvelope(c, false, service.MsgGenericFailure)
	}
	return helpers.PublicEnvelope(c, true, service.MsgSubscribed)
}

// GET /newsletter/unsubscribe/:token
func (nc *NewsletterController) Unsubscribe(c *fiber.Ctx) error {
	row, err := service.Unsubscribe(c.UserContext(), nc.DB, strings.TrimSpace(c.Params("token")))
	if err != nil {
		configs.Log().Error("newsletter unsubscribe failed", zap.Error(err))
	}
	if row == nil {
		return c.JSON(fiber.Map{"success": false, "message": service.MsgInvalidUnsubscribe, "email": nil})
	}
	return c.JSON(fiber.Map{"success": true, "message": service.MsgUnsubscribed, "email": row.Email})
}

/* =========================
   SUBSCRIBERS
========================= */

func subscriberFilter(c *fiber.Ctx) dto.SubscriberFilter {
	f := dto.SubscriberFilter{Status: helpers.QueryTrim(c, "status"), Search: helpers.QueryTrim(c, "search")}
	if f.Status == "" {
		f.Status = "all"
	}
	return f
}

// GET /admin-subscribers
func (nc *NewsletterController) ListSubscribers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := subscriberFilter(c)

	rows, total, p, err := service.ListSubscribers(ctx, nc.DB, f, helpers.ResolvePaging(c, subscribersPerPage, subscribersPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	totals, err := service.CountSubscribers(ctx, nc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	cats, err := service.ListCategories(ctx, nc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromSubscribers(rows), helpers.BuildPagination(total, p), fiber.Map{
		"subscription_categories": dto.FromCategories(cats),
		"status_filter":           f.Status,
		"search_query":            f.Search,
		"total_subscribers":       totals.Total,
		"active_subscribers":      totals.Active,
		"inactive_subscribers":    totals.Inactive,
	})
}

// GET /admin-subscribers/export
func (nc *NewsletterController) ExportSubscribers(c *fiber.Ctx) error {
	rows, err := service.ExportSubscribers(c.UserContext(), nc.DB, subscriberFilter(c))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	out := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		names := make([]string, 0, len(r.Interests))
		for _, i := range r.Interests {
			names = append(names, i.Name)
		}
		status := "Inactive"
		if r.ActiveStatus {
			status = "Active"
		}
		out = append(out, []interface{}{r.ID, r.Email, r.FirstName, r.LastName, r.SubscriptionDate, status, strings.Join(names, ", ")})
	}
	data, err := helpers.BuildXLSX("Subscribers",
		[]string{"ID", "Email", "First Name", "Last Name", "Subscribed", "Status", "Interests"}, out)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.SendXLSX(c, "subscribers", data)
}

// /admin-subscribers/:id/toggle
func (nc *NewsletterController) ToggleSubscriber(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrSubscriberNotFound)
	}
	active, err := service.ToggleSubscriber(c.UserContext(), nc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"active": active})
}

// POST /admin-subscribers/:id/delete
func (nc *NewsletterController) DeleteSubscriber(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrSubscriberNotFound)
	}
	email, err := service.DeleteSubscriber(c.UserContext(), nc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return ajaxOrJSON(c, fmt.Sprintf("Subscriber %s has been deleted successfully.", email),
		fiber.Map{"id": id, "redirect": "/admin-subscribers/"})
}

/* =========================
   NEWSLETTERS
========================= */

// GET /admin-newsletters
func (nc *NewsletterController) ListNewsletters(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := dto.NewsletterFilter{Status: helpers.QueryTrim(c, "status"), Search: helpers.QueryTrim(c, "search")}
	if f.Status == "" {
		f.Status = "all"
	}
	rows, total, p, err := service.ListNewsletters(ctx, nc.DB, f, helpers.ResolvePaging(c, newslettersPerPage, newslettersPerPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	totals, err := service.CountNewsletters(ctx, nc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonListEx(c, "ok", dto.FromNewsletters(rows), helpers.BuildPagination(total, p), fiber.Map{
		"status_filter":     f.Status,
		"search_query":      f.Search,
		"total_newsletters": totals.Total,
		"sent_newsletters":  totals.Sent,
		"draft_newsletters": totals.Draft,
	})
}

func newsletterRequest(c *fiber.Ctx) *dto.NewsletterRequest {
	return &dto.NewsletterRequest{
		Title:           helpers.FormString(c, "title"),
		Content:         helpers.FormString(c, "content"),
		HTMLContent:     helpers.FormString(c, "html_content"),
		CategoryIDs:     helpers.FormUintList(c, "categories"),
		SendImmediately: helpers.FormBool(c, "send_immediately"),
	}
}

// GET /admin-newsletters/create
func (nc *NewsletterController) CreateForm(c *fiber.Ctx) error {
	cats, err := service.ListCategories(c.UserContext(), nc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"categories":   dto.FromCategories(cats),
		"current_page": "newsletter_create",
	})
}

// POST /admin-newsletters/create
func (nc *NewsletterController) Create(c *fiber.Ctx) error {
	row, msg, err := service.CreateNewsletter(c.UserContext(), nc.DB, newsletterRequest(c))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, msg, fiber.Map{
		"newsletter": dto.FromNewsletter(row),
		"redirect":   newslettersPath,
	})
}

// GET /admin-newsletters/:id/edit
func (nc *NewsletterController) EditForm(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrNewsletterNotFound)
	}
	ctx := c.UserContext()
	row, err := service.GetNewsletter(ctx, nc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if row.Sent {
		return helpers.JsonError(c, fiber.StatusConflict, service.MsgEditSent)
	}
	cats, err := service.ListCategories(ctx, nc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"newsletter":          dto.FromNewsletter(row),
		"categories":          dto.FromCategories(cats),
		"selected_categories": dto.FromCategories(row.Categories),
		"current_page":        "newsletter_edit",
	})
}

// POST /admin-newsletters/:id/edit
func (nc *NewsletterController) Update(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrNewsletterNotFound)
	}
	row, msg, err := service.UpdateNewsletter(c.UserContext(), nc.DB, id, newsletterRequest(c))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, msg, fiber.Map{
		"newsletter": dto.FromNewsletter(row),
		"redirect":   newslettersPath,
	})
}

// POST /admin-newsletters/:id/delete
func (nc *NewsletterController) Delete(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrNewsletterNotFound)
	}
	title, err := service.DeleteNewsletter(c.UserContext(), nc.DB, id)
	if err != nil {
		return refusal(c, err)
	}
	return ajaxOrJSON(c, fmt.Sprintf("Newsletter \"%s\" has been deleted successfully.", title),
		fiber.Map{"id": id, "redirect": newslettersPath})
}

/* =========================
   SUBSCRIPTION CATEGORIES
========================= */

// GET /admin-newsletter-categories
func (nc *NewsletterController) ListCategories(c *fiber.Ctx) error {
	stats, err := service.CategoryOverview(c.UserContext(), nc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"categories":            stats.Categories,
		"total_categories":      stats.TotalCategories,
		"active_subscribers":    stats.ActiveSubscribers,
		"newsletters_sent":      stats.NewslettersSent,
		"most_popular_category": stats.MostPopularCategory,
		"current_page":          "newsletter_categories",
	})
}

// POST /admin-newsletter-categories
func (nc *NewsletterController) CreateCategory(c *fiber.Ctx) error {
	var req dto.SubscriptionCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, service.MsgCategoryNameRequired)
	}
	row, err := service.CreateCategory(c.UserContext(), nc.DB, &req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Category \"%s\" created successfully!", row.Name), fiber.Map{
		"category": dto.CategoryRefDTO{ID: row.ID, Name: row.Name},
		"redirect": categoriesPath,
	})
}

// POST /admin-newsletter-categories/:id/delete
func (nc *NewsletterController) DeleteCategory(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrCategoryNotFound)
	}
	name, err := service.DeleteCategory(c.UserContext(), nc.DB, id)
	if err != nil {
		return refusal(c, err)
	}
	return ajaxOrJSON(c, fmt.Sprintf("Category \"%s\" has been deleted successfully.", name),
		fiber.Map{"id": id, "redirect": categoriesPath})
}
