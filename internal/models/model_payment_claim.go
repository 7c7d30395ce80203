package models

import (
	"time"

	"github.com/waoafrica/backoffice/pkg/types"
)

// PaymentClaim is a payer's assertion of having paid for an event ticket via
// M-Pesa, pending human verification. Rows are never deleted; they form the
// audit trail of the verification desk.
type PaymentClaim struct {
	ID        string           `gorm:"column:id;primary_key;type:uuid" json:"id"`
	EventID   string           `gorm:"column:event_id;type:varchar(100);not null;index:idx_event_status,priority:1" json:"event_id"`
	FullName  string           `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	Email     string           `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone     string           `gorm:"column:phone;type:varchar(50);not null" json:"phone"`
	TicketType types.TicketType `gorm:"column:ticket_type;type:varchar(32);not null" json:"ticket_type"`
	// Amount is in whole Kenyan shillings.
	Amount    int64             `gorm:"column:amount;type:bigint;not null" json:"amount"`
	MpesaCode string            `gorm:"column:mpesa_code;type:varchar(32);not null;uniqueIndex:uniq_mpesa_code" json:"mpesa_code"`
	Status    types.ClaimStatus `gorm:"column:status;type:varchar(32);not null;default:'pending_verification';index:idx_event_status,priority:2" json:"status"`
	// ConfirmationMessage records the admin's note from the most recent review
	// (the rejection reason for failed claims).
	ConfirmationMessage *string   `gorm:"column:confirmation_message;type:text" json:"confirmation_message"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (PaymentClaim) TableName() string {
	return "event_payments"
}
