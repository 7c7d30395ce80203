package models

import (
	"time"

	"gorm.io/datatypes"
)

// AdminNotificationPayload carries structured context for a feed entry so the
// dashboard can deep-link without re-parsing the message text.
type AdminNotificationPayload struct {
	PaymentClaimID string `json:"payment_claim_id,omitempty"`
	EventID        string `json:"event_id,omitempty"`
	TicketNumber   string `json:"ticket_number,omitempty"`
	Status         string `json:"status,omitempty"`
}

// AdminNotification is an in-app notification shown in the back-office feed.
type AdminNotification struct {
	ID        string  `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Title     string  `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Message   string  `gorm:"column:message;type:text;not null" json:"message"`
	Type      string  `gorm:"column:type;type:varchar(32);not null;default:'info'" json:"type"`
	Source    string  `gorm:"column:source;type:varchar(64);not null;default:'system'" json:"source"`
	ActionURL *string `gorm:"column:action_url;type:varchar(512)" json:"action_url"`

	Payload datatypes.JSONType[*AdminNotificationPayload] `gorm:"column:payload;type:jsonb;default:'{}'" json:"payload"`

	IsRead    bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminNotification) TableName() string {
	return "admin_notifications"
}
