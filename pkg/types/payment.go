package types

// ClaimStatus is the verification state of an event payment claim.
type ClaimStatus string

const (
	ClaimStatusPendingVerification ClaimStatus = "pending_verification"
	ClaimStatusPaid                ClaimStatus = "paid"
	ClaimStatusFailed              ClaimStatus = "failed"
)

var claimStatuses = []ClaimStatus{
	ClaimStatusPendingVerification,
	ClaimStatusPaid,
	ClaimStatusFailed,
}

// Valid reports whether s is one of the known claim statuses.
func (s ClaimStatus) Valid() bool {
	for _, known := range claimStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TicketType is the admission tier sold for an event.
type TicketType string

const (
	TicketTypeMember   TicketType = "WAO Members"
	TicketTypePublic   TicketType = "Public"
	TicketTypeStandard TicketType = "Standard"
)

var ticketTypes = []TicketType{
	TicketTypeMember,
	TicketTypePublic,
	TicketTypeStandard,
}

// Valid reports whether t is one of the known ticket types.
func (t TicketType) Valid() bool {
	for _, known := range ticketTypes {
		if t == known {
			return true
		}
	}
	return false
}
