package models

import (
	"time"

	"github.com/waoafrica/backoffice/pkg/types"
)

// Ticket is the admission artifact minted when a payment claim is verified as
// paid. At most one ticket exists per claim (unique index on payment_claim_id)
// and ticket numbers are globally unique. Tickets are immutable once created.
type Ticket struct {
	ID             string           `gorm:"column:id;primary_key;type:uuid" json:"id"`
	PaymentClaimID string           `gorm:"column:payment_claim_id;type:uuid;not null;uniqueIndex:uniq_ticket_claim" json:"payment_claim_id"`
	EventID        string           `gorm:"column:event_id;type:varchar(100);not null;index:idx_ticket_event_email,priority:1" json:"event_id"`
	UserEmail      string           `gorm:"column:user_email;type:varchar(255);not null;index:idx_ticket_event_email,priority:2" json:"user_email"`
	FullName       string           `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	TicketType     types.TicketType `gorm:"column:ticket_type;type:varchar(32);not null" json:"ticket_type"`
	AmountPaid     int64            `gorm:"column:amount_paid;type:bigint;not null" json:"amount_paid"`
	MpesaCode      string           `gorm:"column:mpesa_code;type:varchar(32);not null;index:idx_ticket_mpesa_code" json:"mpesa_code"`
	TicketNumber   string           `gorm:"column:ticket_number;type:varchar(32);not null;uniqueIndex:uniq_ticket_number" json:"ticket_number"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (Ticket) TableName() string {
	return "event_tickets"
}
