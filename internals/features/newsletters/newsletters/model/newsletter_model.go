package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionCategoryModel struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (SubscriptionCategoryModel) TableName() string {
	return "subscription_categories"
}

type SubscriberModel struct {
	ID               uint                        `gorm:"column:id;primaryKey" json:"id"`
	Email            string                      `gorm:"column:email;type:varchar(254);not null;uniqueIndex" json:"email"`
	FirstName        string                      `gorm:"column:first_name;type:varchar(100)" json:"first_name"`
	LastName         string                      `gorm:"column:last_name;type:varchar(100)" json:"last_name"`
	SubscriptionDate time.Time                   `gorm:"column:subscription_date;autoCreateTime;index" json:"subscription_date"`
	Interests        []SubscriptionCategoryModel `gorm:"many2many:subscriber_interests;joinForeignKey:SubscriberID;joinReferences:SubscriptionCategoryID" json:"interests,omitempty"`
	ActiveStatus     bool                        `gorm:"column:active_status;not null;index" json:"active_status"`
	UnsubscribeToken string                      `gorm:"column:unsubscribe_token;type:varchar(100);not null;uniqueIndex" json:"-"`
}

func (SubscriberModel) TableName() string {
	return "subscribers"
}

// BeforeCreate assigns the unsubscribe token when the caller did not.
func (s *SubscriberModel) BeforeCreate(tx *gorm.DB) error {
	if s.UnsubscribeToken == "" {
		s.UnsubscribeToken = uuid.NewString()
	}
	return nil
}

type NewsletterModel struct {
	ID             uint                        `gorm:"column:id;primaryKey" json:"id"`
	Title          string                      `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Content        string                      `gorm:"column:content;type:text;not null" json:"content"`
	HTMLContent    string                      `gorm:"column:html_content;type:text" json:"html_content"`
	SendDate       *time.Time                  `gorm:"column:send_date" json:"send_date"`
	RecipientCount int                         `gorm:"column:recipient_count;not null" json:"recipient_count"`
	Categories     []SubscriptionCategoryModel `gorm:"many2many:newsletter_categories;joinForeignKey:NewsletterID;joinReferences:SubscriptionCategoryID" json:"categories,omitempty"`
	CreatedDate    time.Time                   `gorm:"column:created_date;autoCreateTime;index" json:"created_date"`
	Sent           bool                        `gorm:"column:sent;not null;index" json:"sent"`
}

func (NewsletterModel) TableName() string {
	return "newsletters"
}

// Join tables, declared so the raw count queries have a typed handle.
const (
	SubscriberInterestsTable  = "subscriber_interests"
	NewsletterCategoriesTable = "newsletter_categories"
)
