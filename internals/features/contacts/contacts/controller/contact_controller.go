package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"axflo_backend/internals/configs"
	"axflo_backend/internals/features/contacts/contacts/dto"
	"axflo_backend/internals/features/contacts/contacts/service"
	helpers "axflo_backend/internals/helpers"
)

const perPage = 20

type ContactController struct {
	DB       *gorm.DB
	Notifier helpers.LeadNotifier
}

func NewContactController(db *gorm.DB, notifier helpers.LeadNotifier) *ContactController {
	return &ContactController{DB: db, Notifier: notifier}
}

/* =========================
   PUBLIC
========================= */

// GET /contact
func (cc *ContactController) ContactPage(c *fiber.Ctx) error {
	cats, err := service.ListCategories(c.UserContext(), cc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"inquiry_categories": dto.FromInquiryCategories(cats),
	})
}

// POST /contact
// Always 200; the outcome is in success/message.
func (cc *ContactController) Submit(c *fiber.Ctx) error {
	var req dto.ContactSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.PublicEnvelope(c, false, service.MsgMissingFields)
	}

	row, err := service.CreateSubmission(c.UserContext(), cc.DB, &req)
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidInquiryType):
		return helpers.PublicEnvelope(c, false, err.Error())
	case err != nil:
		configs.Log().Error("contact submit failed", zap.Error(err))
		return helpers.PublicEnvelope(c, false, service.MsgGenericFailure)
	}

	helpers.NotifyAsync(cc.Notifier, helpers.LeadEvent{
		Kind:      "contact",
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Summary:   helpers.Excerpt(row.Message, 200),
		Extra:     map[string]any{"inquiry_type": row.InquiryType.Name, "company": row.Company},
		CreatedAt: row.Date,
	})
	return helpers.PublicEnvelope(c, true, service.MsgThankYou)
}

/* =========================
   ADMIN SUBMISSIONS
========================= */

func listFilter(c *fiber.Ctx) dto.ListFilter {
	f := dto.ListFilter{
		Status:      helpers.QueryTrim(c, "status"),
		InquiryType: helpers.QueryTrim(c, "inquiry_type"),
		Search:      helpers.QueryTrim(c, "search"),
	}
	if f.Status == "" {
		f.Status = "all"
	}
	if f.InquiryType == "" {
		f.InquiryType = "all"
	}
	return f
}

// GET /admin-contacts
func (cc *ContactController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	f := listFilter(c)

	rows, total, p, err := service.ListSubmissions(ctx, cc.DB, f, helpers.ResolvePaging(c, perPage, perPage))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	totals, err := service.CountTotals(ctx, cc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	cats, err := service.ListCategories(ctx, cc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	return helpers.JsonListEx(c, "ok", dto.FromSubmissions(rows), helpers.BuildPagination(total, p), fiber.Map{
		"total_contacts":     totals.Total,
		"unread_contacts":    totals.Unread,
		"inquiry_categories": dto.FromInquiryCategories(cats),
		"status_filter":      f.Status,
		"inquiry_filter":     f.InquiryType,
		"search_query":       f.Search,
	})
}

// GET /admin-contacts/export
func (cc *ContactController) Export(c *fiber.Ctx) error {
	rows, err := service.ExportSubmissions(c.UserContext(), cc.DB, listFilter(c))
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	out := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		category := ""
		if r.InquiryType != nil {
			category = r.InquiryType.Name
		}
		status := "Unread"
		if r.Read {
			status = "Read"
		}
		out = append(out, []interface{}{r.ID, r.Date, r.Name, r.Email, r.Company, r.Phone, category, status, r.Message})
	}
	data, err := helpers.BuildXLSX("Contacts",
		[]string{"ID", "Date", "Name", "Email", "Company", "Phone", "Inquiry Type", "Status", "Message"}, out)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.SendXLSX(c, "contacts", data)
}

// GET /admin-contact/:id
// Opening a submission marks it read.
func (cc *ContactController) Detail(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, service.MsgNotFound)
	}
	ctx := c.UserContext()
	row, err := service.GetSubmission(ctx, cc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if err := service.MarkRead(ctx, cc.DB, row); err != nil {
		return helpers.FromFiberError(c, err)
	}
	responses, err := service.ListResponses(ctx, cc.DB, row.ID)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{
		"contact":   dto.FromSubmission(row),
		"responses": dto.FromResponses(responses),
	})
}

// POST /admin-contact/:id
func (cc *ContactController) Reply(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, service.MsgNotFound)
	}
	staffID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}

	var req dto.ContactReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	text := strings.TrimSpace(req.ResponseText)
	if text == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, service.MsgResponseEmpty)
	}

	ctx := c.UserContext()
	row, err := service.GetSubmission(ctx, cc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	resp, err := service.AddResponse(ctx, cc.DB, row.ID, staffID, text)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, service.MsgResponseSent, fiber.Map{
		"response": dto.FromResponse(resp),
		"redirect": fmt.Sprintf("/admin-contact/%d/", row.ID),
	})
}

// /admin-contact/:id/toggle-read
func (cc *ContactController) ToggleRead(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.AjaxFail(c, service.MsgNotFound)
	}
	read, err := service.ToggleRead(c.UserContext(), cc.DB, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return helpers.AjaxFail(c, service.MsgNotFound)
		}
		return helpers.FromFiberError(c, err)
	}
	return helpers.AjaxOK(c, fiber.Map{"read": read})
}

// POST /admin-contact/:id/delete
func (cc *ContactController) Delete(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.JsonError(c, fiber.StatusNotFound, service.MsgNotFound)
	}
	name, err := service.DeleteSubmission(c.UserContext(), cc.DB, id)
	if err != nil {
		if helpers.IsXHR(c) && errors.Is(err, service.ErrNotFound) {
			return helpers.AjaxFailMessage(c, service.MsgNotFound)
		}
		return helpers.FromFiberError(c, err)
	}

	msg := fmt.Sprintf("Contact message from %s has been deleted successfully.", name)
	if helpers.IsXHR(c) {
		return helpers.AjaxMessage(c, msg)
	}
	return helpers.JsonDeleted(c, msg, fiber.Map{"id": id, "redirect": "/admin-contacts/"})
}

// POST /admin-contacts/bulk-delete
// Accepts a JSON body {"contact_ids": [...]} or form values contact_ids.
func (cc *ContactController) BulkDelete(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return helpers.AjaxFailMessage(c, "Invalid request method.")
	}

	var ids []uint
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		var req dto.BulkDeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return helpers.AjaxFailMessage(c, "Invalid request body.")
		}
		ids = req.ContactIDs
	} else {
		ids = helpers.FormUintList(c, "contact_ids")
	}
	if len(ids) == 0 {
		return helpers.AjaxFailMessage(c, "No contacts selected for deletion.")
	}

	n, err := service.BulkDelete(c.UserContext(), cc.DB, ids)
	if err != nil {
		configs.Log().Error("bulk delete contacts failed", zap.Error(err))
		return helpers.AjaxFailMessage(c, service.MsgGenericFailure)
	}
	return helpers.AjaxOK(c, fiber.Map{
		"message":       fmt.Sprintf("Successfully deleted %d contact message(s).", n),
		"deleted_count": n,
	})
}

/* =========================
   INQUIRY CATEGORIES
========================= */

// GET /admin-inquiry-categories
func (cc *ContactController) ListCategories(c *fiber.Ctx) error {
	ctx := c.UserContext()
	cats, err := service.ListCategories(ctx, cc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	usage, err := service.CategoryUsage(ctx, cc.DB)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	out := dto.FromInquiryCategories(cats)
	for i := range out {
		n := usage[out[i].ID]
		out[i].SubmissionCount = &n
	}
	return helpers.JsonOK(c, "ok", out)
}

func parseCategory(c *fiber.Ctx) (*dto.InquiryCategoryRequest, map[string][]string, error) {
	var req dto.InquiryCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	return &req, helpers.ValidateStruct(&req), nil
}

// POST /admin-inquiry-categories
func (cc *ContactController) CreateCategory(c *fiber.Ctx) error {
	req, fieldErrs, err := parseCategory(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	row, err := service.CreateCategory(c.UserContext(), cc.DB, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonCreated(c, fmt.Sprintf("Inquiry category \"%s\" created successfully!", row.Name), dto.FromInquiryCategory(row))
}

// PATCH /admin-inquiry-categories/:id
func (cc *ContactController) UpdateCategory(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrCategoryNotFound)
	}
	req, fieldErrs, err := parseCategory(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	if fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}
	row, err := service.UpdateCategory(c.UserContext(), cc.DB, id, req)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonUpdated(c, fmt.Sprintf("Inquiry category \"%s\" updated successfully!", row.Name), dto.FromInquiryCategory(row))
}

// DELETE /admin-inquiry-categories/:id
func (cc *ContactController) DeleteCategory(c *fiber.Ctx) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return helpers.FromFiberError(c, service.ErrCategoryNotFound)
	}
	name, err := service.DeleteCategory(c.UserContext(), cc.DB, id)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	return helpers.JsonDeleted(c, fmt.Sprintf("Inquiry category \"%s\" has been deleted successfully.", name), fiber.Map{"id": id})
}
