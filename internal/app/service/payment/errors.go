package payment

import "errors"

var (
	// ErrClaimNotFound is returned when no claim exists for the given id.
	ErrClaimNotFound = errors.New("payment claim not found")
	// ErrInvalidStatus is returned when a review targets a status outside
	// the closed enumeration. Nothing is written in that case.
	ErrInvalidStatus = errors.New("invalid payment status")
	// ErrMissingReason is returned when a claim is failed without a reason.
	// Nothing is written in that case.
	ErrMissingReason = errors.New("rejection reason is required")
	// ErrDuplicateMpesaCode is returned when a claim is submitted with an
	// M-Pesa code another claim already holds.
	ErrDuplicateMpesaCode = errors.New("mpesa code already claimed")
)
