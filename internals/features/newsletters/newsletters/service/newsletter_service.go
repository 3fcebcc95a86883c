package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"axflo_backend/internals/features/newsletters/newsletters/dto"
	"axflo_backend/internals/features/newsletters/newsletters/model"
	helpers "axflo_backend/internals/helpers"
)

const (
	MsgEmailRequired    = "Please enter your email address."
	MsgEmailInvalid     = "Please enter a valid email address."
	MsgAlreadySubscribe = "This email is already subscribed to our newsletter."
	MsgSubscribed       = "Thank you for subscribing! You will receive our latest updates and news."
	MsgGenericFailure   = "An error occurred. Please try again later."

	MsgUnsubscribed       = "You have been successfully unsubscribed from our newsletter."
	MsgInvalidUnsubscribe = "Invalid unsubscribe link. Please contact us if you need assistance."

	MsgTitleRequired   = "Newsletter title is required."
	MsgContentRequired = "Newsletter content is required."
	MsgEditSent        = "Cannot edit a newsletter that has already been sent."
	MsgDeleteSent      = "Cannot delete a newsletter that has already been sent."

	MsgCategoryNameRequired = "Category name is required."
)

var (
	ErrEmailRequired     = errors.New(MsgEmailRequired)
	ErrEmailInvalid      = errors.New(MsgEmailInvalid)
	ErrAlreadySubscribed = errors.New(MsgAlreadySubscribe)

	ErrSubscriberNotFound = fiber.NewError(fiber.StatusNotFound, "Subscriber not found")
	ErrNewsletterNotFound = fiber.NewError(fiber.StatusNotFound, "Newsletter not found")
	ErrCategoryNotFound   = fiber.NewError(fiber.StatusNotFound, "Category not found")
)

/* ======================= PUBLIC ======================= */

// Subscribe creates an active subscriber. Emails are stored lowercase.
func Subscribe(ctx context.Context, db *gorm.DB, req *dto.SubscribeRequest) (*model.SubscriberModel, error) {
	req.Normalize()
	if req.Email == "" {
		return nil, ErrEmailRequired
	}
	if !helpers.IsValidEmail(req.Email) {
		return nil, ErrEmailInvalid
	}

	var row model.SubscriberModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.SubscriberModel{}).Where("email = ?", req.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadySubscribed
		}

		row = model.SubscriberModel{
			Email:        req.Email,
			FirstName:    helpers.Truncate(req.FirstName, 100),
			LastName:     helpers.Truncate(req.LastName, 100),
			ActiveStatus: true,
		}
		if err := tx.Omit("Interests").Create(&row).Error; err != nil {
			if helpers.IsUniqueViolation(err) {
				return ErrAlreadySubscribed
			}
			return err
		}
		if len(req.InterestIDs) == 0 {
			return nil
		}
		var cats []model.SubscriptionCategoryModel
		if err := tx.Where("id IN ?", req.InterestIDs).Find(&cats).Error; err != nil {
			return err
		}
		if len(cats) == 0 {
			return nil
		}
		row.Interests = cats
		return tx.Model(&row).Association("Interests").Replace(cats)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Unsubscribe deactivates the subscriber owning token. An unknown token
// returns (nil, nil) and changes nothing.
func Unsubscribe(ctx context.Context, db *gorm.DB, token string) (*model.SubscriberModel, error) {
	if token == "" {
		return nil, nil
	}
	var row model.SubscriberModel
	err := db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&row).Update("active_status", false).Error; err != nil {
		return nil, err
	}
	row.ActiveStatus = false
	return &row, nil
}

/* ======================= SUBSCRIBERS ======================= */

func subscriberQuery(db *gorm.DB, f dto.SubscriberFilter) *gorm.DB {
	q := db.Model(&model.SubscriberModel{})
	switch f.Status {
	case "active":
		q = q.Where("active_status = ?", true)
	case "inactive":
		q = q.Where("active_status = ?", false)
	}
	return helpers.SearchAny(q, f.Search, "email", "first_name", "last_name")
}

func ListSubscribers(ctx context.Context, db *gorm.DB, f dto.SubscriberFilter, p helpers.Paging) ([]model.SubscriberModel, int64, helpers.Paging, error) {
	var total int64
	if err := subscriberQuery(db.WithContext(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)
	var rows []model.SubscriberModel
	err := subscriberQuery(db.WithContext(ctx), f).
		Preload("Interests").
		Order("subscription_date DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

func ExportSubscribers(ctx context.Context, db *gorm.DB, f dto.SubscriberFilter) ([]model.SubscriberModel, error) {
	var rows []model.SubscriberModel
	err := subscriberQuery(db.WithContext(ctx), f).
		Preload("Interests").
		Order("subscription_date DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

type SubscriberTotals struct {
	Total    int64 `json:"total_subscribers"`
	Active   int64 `json:"active_subscribers"`
	Inactive int64 `json:"inactive_subscribers"`
}

func CountSubscribers(ctx context.Context, db *gorm.DB) (SubscriberTotals, error) {
	var t SubscriberTotals
	if err := db.WithContext(ctx).Model(&model.SubscriberModel{}).Count(&t.Total).Error; err != nil {
		return t, err
	}
	err := db.WithContext(ctx).Model(&model.SubscriberModel{}).
		Where("active_status = ?", true).Count(&t.Active).Error
	t.Inactive = t.Total - t.Active
	return t, err
}

// ToggleSubscriber flips active_status and returns the new value.
func ToggleSubscriber(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var active bool
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.SubscriberModel
		if err := tx.Select("id", "active_status").First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubscriberNotFound
			}
			return err
		}
		active = !row.ActiveStatus
		return tx.Model(&row).Update("active_status", active).Error
	})
	return active, err
}

// DeleteSubscriber returns the deleted email.
func DeleteSubscriber(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var email string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.SubscriberModel
		if err := tx.Select("id", "email").First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubscriberNotFound
			}
			return err
		}
		email = row.Email
		if err := tx.Exec("DELETE FROM "+model.SubscriberInterestsTable+" WHERE subscriber_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SubscriberModel{}, id).Error
	})
	return email, err
}

/* ======================= NEWSLETTERS ======================= */

func newsletterQuery(db *gorm.DB, f dto.NewsletterFilter) *gorm.DB {
	q := db.Model(&model.NewsletterModel{})
	switch f.Status {
	case "sent":
		q = q.Where("sent = ?", true)
	case "draft":
		q = q.Where("sent = ?", false)
	}
	return helpers.SearchAny(q, f.Search, "title", "content")
}

func ListNewsletters(ctx context.Context, db *gorm.DB, f dto.NewsletterFilter, p helpers.Paging) ([]model.NewsletterModel, int64, helpers.Paging, error) {
	var total int64
	if err := newsletterQuery(db.WithContext(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, p, err
	}
	p = p.Clamp(total)
	var rows []model.NewsletterModel
	err := newsletterQuery(db.WithContext(ctx), f).
		Preload("Categories").
		Order("created_date DESC").Order("id DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&rows).Error
	return rows, total, p, err
}

type NewsletterTotals struct {
	Total int64 `json:"total_newsletters"`
	Sent  int64 `json:"sent_newsletters"`
	Draft int64 `json:"draft_newsletters"`
}

func CountNewsletters(ctx context.Context, db *gorm.DB) (NewsletterTotals, error) {
	var t NewsletterTotals
	if err := db.WithContext(ctx).Model(&model.NewsletterModel{}).Count(&t.Total).Error; err != nil {
		return t, err
	}
	err := db.WithContext(ctx).Model(&model.NewsletterModel{}).
		Where("sent = ?", true).Count(&t.Sent).Error
	t.Draft = t.Total - t.Sent
	return t, err
}

func GetNewsletter(ctx context.Context, db *gorm.DB, id uint) (*model.NewsletterModel, error) {
	var row model.NewsletterModel
	if err := db.WithContext(ctx).Preload("Categories").First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsletterNotFound
		}
		return nil, err
	}
	return &row, nil
}

// CountRecipients counts active subscribers interested in any of
// categoryIDs, or every active subscriber when categoryIDs is empty.
func CountRecipients(tx *gorm.DB, categoryIDs []uint) (int64, error) {
	var n int64
	q := tx.Model(&model.SubscriberModel{}).Where("subscribers.active_status = ?", true)
	if len(categoryIDs) == 0 {
		err := q.Count(&n).Error
		return n, err
	}
	err := q.Joins("JOIN "+model.SubscriberInterestsTable+" si ON si.subscriber_id = subscribers.id").
		Where("si.subscription_category_id IN ?", categoryIDs).
		Distinct("subscribers.id").
		Count(&n).Error
	return n, err
}

func validateNewsletter(req *dto.NewsletterRequest) error {
	req.Normalize()
	if req.Content == "" && req.HTMLContent != "" {
		req.Content = helpers.HTMLToText(req.HTMLContent)
	}
	if req.Title == "" {
		return fiber.NewError(fiber.StatusBadRequest, MsgTitleRequired)
	}
	if req.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, MsgContentRequired)
	}
	return nil
}

// applyCategories replaces the newsletter categories and refreshes the
// recipient snapshot.
func applyCategories(tx *gorm.DB, row *model.NewsletterModel, ids []uint) error {
	var cats []model.SubscriptionCategoryModel
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Order("name ASC").Find(&cats).Error; err != nil {
			return err
		}
	}
	if err := tx.Model(row).Association("Categories").Replace(cats); err != nil {
		return err
	}
	row.Categories = cats

	n, err := CountRecipients(tx, ids)
	if err != nil {
		return err
	}
	row.RecipientCount = int(n)
	return tx.Model(row).UpdateColumn("recipient_count", row.RecipientCount).Error
}

// CreateNewsletter stores the newsletter with its categories and recipient
// snapshot in one transaction. Returns the confirmation message.
func CreateNewsletter(ctx context.Context, db *gorm.DB, req *dto.NewsletterRequest) (*model.NewsletterModel, string, error) {
	if err := validateNewsletter(req); err != nil {
		return nil, "", err
	}
	row := model.NewsletterModel{
		Title:       helpers.Truncate(req.Title, 200),
		Content:     req.Content,
		HTMLContent: req.HTMLContent,
		Sent:        req.SendImmediately,
	}
	if req.SendImmediately {
		now := time.Now()
		row.SendDate = &now
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(&row).Error; err != nil {
			return err
		}
		return applyCategories(tx, &row, req.CategoryIDs)
	})
	if err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("Newsletter \"%s\" created as draft. Ready to send to %d subscribers.", row.Title, row.RecipientCount)
	if row.Sent {
		msg = fmt.Sprintf("Newsletter \"%s\" created and sent to %d subscribers!", row.Title, row.RecipientCount)
	}
	return &row, msg, nil
}

// UpdateNewsletter refuses sent newsletters. The row is locked for the
// duration of the transaction.
func UpdateNewsletter(ctx context.Context, db *gorm.DB, id uint, req *dto.NewsletterRequest) (*model.NewsletterModel, string, error) {
	if err := validateNewsletter(req); err != nil {
		return nil, "", err
	}

	var row model.NewsletterModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNewsletterNotFound
			}
			return err
		}
		if row.Sent {
			return fiber.NewError(fiber.StatusConflict, MsgEditSent)
		}

		row.Title = helpers.Truncate(req.Title, 200)
		row.Content = req.Content
		row.HTMLContent = req.HTMLContent
		row.Sent = req.SendImmediately
		if req.SendImmediately {
			now := time.Now()
			row.SendDate = &now
		}
		if err := tx.Model(&row).Select("title", "content", "html_content", "sent", "send_date").
			Updates(&row).Error; err != nil {
			return err
		}
		return applyCategories(tx, &row, req.CategoryIDs)
	})
	if err != nil {
		return nil, "", err
	}

	msg := fmt.Sprintf("Newsletter \"%s\" updated successfully. Ready to send to %d subscribers.", row.Title, row.RecipientCount)
	if row.Sent {
		msg = fmt.Sprintf("Newsletter \"%s\" updated and sent to %d subscribers!", row.Title, row.RecipientCount)
	}
	return &row, msg, nil
}

// DeleteNewsletter refuses sent newsletters. Returns the deleted title.
func DeleteNewsletter(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var title string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.NewsletterModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNewsletterNotFound
			}
			return err
		}
		title = row.Title
		if row.Sent {
			return fiber.NewError(fiber.StatusConflict, MsgDeleteSent)
		}
		if err := tx.Exec("DELETE FROM "+model.NewsletterCategoriesTable+" WHERE newsletter_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.NewsletterModel{}, id).Error
	})
	return title, err
}

/* ======================= SUBSCRIPTION CATEGORIES ======================= */

func ListCategories(ctx context.Context, db *gorm.DB) ([]model.SubscriptionCategoryModel, error) {
	var rows []model.SubscriptionCategoryModel
	err := db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error
	return rows, err
}

func activeSubscriberCount(tx *gorm.DB, categoryID uint) (int64, error) {
	var n int64
	err := tx.Model(&model.SubscriberModel{}).
		Joins("JOIN "+model.SubscriberInterestsTable+" si ON si.subscriber_id = subscribers.id").
		Where("si.subscription_category_id = ? AND subscribers.active_status = ?", categoryID, true).
		Count(&n).Error
	return n, err
}

func newsletterCount(tx *gorm.DB, categoryID uint) (int64, error) {
	var n int64
	err := tx.Table(model.NewsletterCategoriesTable).
		Where("subscription_category_id = ?", categoryID).
		Count(&n).Error
	return n, err
}

type CategoryStats struct {
	Categories          []dto.SubscriptionCategoryDTO `json:"categories"`
	TotalCategories     int                           `json:"total_categories"`
	ActiveSubscribers   int64                         `json:"active_subscribers"`
	NewslettersSent     int64                         `json:"newsletters_sent"`
	MostPopularCategory string                        `json:"most_popular_category"`
}

// CategoryOverview lists categories with their active subscriber and
// newsletter counts. The most popular category is the first one with the
// highest non-zero subscriber count.
func CategoryOverview(ctx context.Context, db *gorm.DB) (*CategoryStats, error) {
	tx := db.WithContext(ctx)
	cats, err := ListCategories(ctx, db)
	if err != nil {
		return nil, err
	}
	out := &CategoryStats{
		Categories:          make([]dto.SubscriptionCategoryDTO, 0, len(cats)),
		TotalCategories:     len(cats),
		MostPopularCategory: "None",
	}
	var best int64
	for _, cat := range cats {
		subs, err := activeSubscriberCount(tx, cat.ID)
		if err != nil {
			return nil, err
		}
		nls, err := newsletterCount(tx, cat.ID)
		if err != nil {
			return nil, err
		}
		out.Categories = append(out.Categories, dto.SubscriptionCategoryDTO{
			ID:              cat.ID,
			Name:            cat.Name,
			Description:     cat.Description,
			SubscriberCount: subs,
			NewsletterCount: nls,
		})
		if subs > best {
			best = subs
			out.MostPopularCategory = cat.Name
		}
	}
	if err := tx.Model(&model.SubscriberModel{}).Where("active_status = ?", true).
		Count(&out.ActiveSubscribers).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&model.NewsletterModel{}).Where("sent = ?", true).
		Count(&out.NewslettersSent).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory refuses a blank or already used name.
func CreateCategory(ctx context.Context, db *gorm.DB, req *dto.SubscriptionCategoryRequest) (*model.SubscriptionCategoryModel, error) {
	req.Normalize()
	if req.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, MsgCategoryNameRequired)
	}
	exists := fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Category \"%s\" already exists.", req.Name))

	var n int64
	if err := db.WithContext(ctx).Model(&model.SubscriptionCategoryModel{}).
		Where("name = ?", req.Name).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, exists
	}
	row := model.SubscriptionCategoryModel{Name: helpers.Truncate(req.Name, 100), Description: req.Description}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			return nil, exists
		}
		return nil, err
	}
	return &row, nil
}

// DeleteCategory refuses while active subscribers or any newsletter still
// reference the category. Inactive subscribers just lose the interest.
func DeleteCategory(ctx context.Context, db *gorm.DB, id uint) (string, error) {
	var name string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.SubscriptionCategoryModel
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		name = row.Name

		subs, err := activeSubscriberCount(tx, id)
		if err != nil {
			return err
		}
		if subs > 0 {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf(
				"Cannot delete category \"%s\" because it has %d active subscribers. Please move subscribers to another category first.",
				row.Name, subs))
		}
		nls, err := newsletterCount(tx, id)
		if err != nil {
			return err
		}
		if nls > 0 {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf(
				"Cannot delete category \"%s\" because it has %d newsletters. Please remove the category from newsletters first.",
				row.Name, nls))
		}

		if err := tx.Exec("DELETE FROM "+model.SubscriberInterestsTable+" WHERE subscription_category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&row).Error
	})
	return name, err
}
