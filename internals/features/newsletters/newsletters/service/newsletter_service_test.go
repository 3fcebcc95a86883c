package service_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"axflo_backend/internals/features/newsletters/newsletters/dto"
	"axflo_backend/internals/features/newsletters/newsletters/model"
	"axflo_backend/internals/features/newsletters/newsletters/service"
	"axflo_backend/internals/testutil"
)

func subscribe(t *testing.T, db *gorm.DB, email string, interests ...uint) *model.SubscriberModel {
	t.Helper()
	row, err := service.Subscribe(context.Background(), db, &dto.SubscribeRequest{Email: email, InterestIDs: interests})
	require.NoError(t, err)
	return row
}

func category(t *testing.T, db *gorm.DB, name string) *model.SubscriptionCategoryModel {
	t.Helper()
	row, err := service.CreateCategory(context.Background(), db, &dto.SubscriptionCategoryRequest{Name: name})
	require.NoError(t, err)
	return row
}

func conflictMessage(t *testing.T, err error) string {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	return fe.Message
}

func TestSubscribe(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cat := category(t, db, "Company Updates")

	row := subscribe(t, db, " Jane@X.com ", cat.ID, 999)
	assert.Equal(t, "jane@x.com", row.Email)
	assert.True(t, row.ActiveStatus)
	assert.NotEmpty(t, row.UnsubscribeToken)
	require.Len(t, row.Interests, 1)

	_, err := service.Subscribe(ctx, db, &dto.SubscribeRequest{Email: "JANE@x.com"})
	assert.ErrorIs(t, err, service.ErrAlreadySubscribed)

	_, err = service.Subscribe(ctx, db, &dto.SubscribeRequest{Email: ""})
	assert.ErrorIs(t, err, service.ErrEmailRequired)

	_, err = service.Subscribe(ctx, db, &dto.SubscribeRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, service.ErrEmailInvalid)

	var n int64
	require.NoError(t, db.Model(&model.SubscriberModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUnsubscribe(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	row := subscribe(t, db, "jane@x.com")

	got, err := service.Unsubscribe(ctx, db, "unknown-token")
	require.NoError(t, err)
	assert.Nil(t, got)

	var stored model.SubscriberModel
	require.NoError(t, db.First(&stored, row.ID).Error)
	assert.True(t, stored.ActiveStatus)

	got, err = service.Unsubscribe(ctx, db, row.UnsubscribeToken)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "jane@x.com", got.Email)

	require.NoError(t, db.First(&stored, row.ID).Error)
	assert.False(t, stored.ActiveStatus)
}

func TestRecipientCountSnapshot(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	updates := category(t, db, "Company Updates")
	safety := category(t, db, "Safety")

	subscribe(t, db, "a@x.com", updates.ID)
	subscribe(t, db, "b@x.com", updates.ID, safety.ID)
	subscribe(t, db, "c@x.com")
	gone := subscribe(t, db, "d@x.com", updates.ID)
	_, err := service.Unsubscribe(ctx, db, gone.UnsubscribeToken)
	require.NoError(t, err)

	all, msg, err := service.CreateNewsletter(ctx, db, &dto.NewsletterRequest{Title: "Q1", Content: "news"})
	require.NoError(t, err)
	assert.Equal(t, 3, all.RecipientCount)
	assert.Equal(t, `Newsletter "Q1" created as draft. Ready to send to 3 subscribers.`, msg)

	targeted, _, err := service.CreateNewsletter(ctx, db, &dto.NewsletterRequest{
		Title: "Q2", Content: "news", CategoryIDs: []uint{updates.ID, safety.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, targeted.RecipientCount)

	var stored model.NewsletterModel
	require.NoError(t, db.Preload("Categories").First(&stored, targeted.ID).Error)
	assert.Equal(t, 2, stored.RecipientCount)
	assert.Len(t, stored.Categories, 2)
}

func TestNewsletterContentFallsBackToHTML(t *testing.T) {
	db := testutil.NewDB(t)
	row, _, err := service.CreateNewsletter(context.Background(), db, &dto.NewsletterRequest{
		Title: "HTML only", HTMLContent: "<h1>Hello</h1><p>subscribers</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello subscribers", row.Content)

	_, _, err = service.CreateNewsletter(context.Background(), db, &dto.NewsletterRequest{Content: "x"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, service.MsgTitleRequired, fe.Message)
}

func TestSentNewsletterIsLocked(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	subscribe(t, db, "a@x.com")

	sent, msg, err := service.CreateNewsletter(ctx, db, &dto.NewsletterRequest{Title: "Launch", Content: "body", SendImmediately: true})
	require.NoError(t, err)
	assert.True(t, sent.Sent)
	assert.NotNil(t, sent.SendDate)
	assert.Equal(t, `Newsletter "Launch" created and sent to 1 subscribers!`, msg)

	_, _, err = service.UpdateNewsletter(ctx, db, sent.ID, &dto.NewsletterRequest{Title: "Changed", Content: "body"})
	assert.Equal(t, service.MsgEditSent, conflictMessage(t, err))

	_, err = service.DeleteNewsletter(ctx, db, sent.ID)
	assert.Equal(t, service.MsgDeleteSent, conflictMessage(t, err))

	var stored model.NewsletterModel
	require.NoError(t, db.First(&stored, sent.ID).Error)
	assert.Equal(t, "Launch", stored.Title)

	draft, _, err := service.CreateNewsletter(ctx, db, &dto.NewsletterRequest{Title: "Draft", Content: "body"})
	require.NoError(t, err)
	updated, _, err := service.UpdateNewsletter(ctx, db, draft.ID, &dto.NewsletterRequest{Title: "Draft 2", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "Draft 2", updated.Title)

	title, err := service.DeleteNewsletter(ctx, db, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft 2", title)

	_, err = service.DeleteNewsletter(ctx, db, draft.ID)
	assert.ErrorIs(t, err, service.ErrNewsletterNotFound)
}

func TestDeleteSubscriptionCategory(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	withSubs := category(t, db, "Company Updates")
	withNewsletter := category(t, db, "Safety")
	dormant := category(t, db, "Dormant")

	subscribe(t, db, "a@x.com", withSubs.ID)
	inactive := subscribe(t, db, "b@x.com", dormant.ID)
	_, err := service.Unsubscribe(ctx, db, inactive.UnsubscribeToken)
	require.NoError(t, err)
	_, _, err = service.CreateNewsletter(ctx, db, &dto.NewsletterRequest{Title: "N", Content: "c", CategoryIDs: []uint{withNewsletter.ID}})
	require.NoError(t, err)

	_, err = service.DeleteCategory(ctx, db, withSubs.ID)
	assert.Contains(t, conflictMessage(t, err), "1 active subscribers")

	_, err = service.DeleteCategory(ctx, db, withNewsletter.ID)
	assert.Contains(t, conflictMessage(t, err), "1 newsletters")

	name, err := service.DeleteCategory(ctx, db, dormant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dormant", name)

	var links int64
	require.NoError(t, db.Table(model.SubscriberInterestsTable).Where("subscription_category_id = ?", dormant.ID).Count(&links).Error)
	assert.Zero(t, links)

	_, err = service.CreateCategory(ctx, db, &dto.SubscriptionCategoryRequest{Name: "Safety"})
	assert.Contains(t, conflictMessage(t, err), "already exists")

	stats, err := service.CategoryOverview(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, "Company Updates", stats.MostPopularCategory)
	assert.EqualValues(t, 1, stats.ActiveSubscribers)
}

func TestNewsletterMessageKeepsQuotes(t *testing.T) {
	db := testutil.NewDB(t)
	_, msg, err := service.CreateNewsletter(context.Background(), db, &dto.NewsletterRequest{Title: `The "Q3" Brief`, Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, `Newsletter "The "Q3" Brief" created as draft. Ready to send to 0 subscribers.`, msg)
}
