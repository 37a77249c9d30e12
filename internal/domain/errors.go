package domain

import "errors"

var (
	ErrPrestationNotFound = errors.New("prestation not found")
	ErrExpenseNotFound    = errors.New("expense not found")

	ErrUnknownCategory      = errors.New("unknown category")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrAmountMethodMismatch = errors.New("amounts do not match payment method")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrDescriptionTooLong   = errors.New("description exceeds maximum length")
	ErrNotesTooLong         = errors.New("notes exceed maximum length")
	ErrDateRequired         = errors.New("date is required")
	ErrInvalidGranularity   = errors.New("invalid granularity")
	ErrInvalidDirection     = errors.New("invalid direction")
	ErrInvalidPaymentFilter = errors.New("invalid payment filter")
	ErrReceiptNotFound      = errors.New("expense has no receipt")
	ErrInvalidReceiptImage  = errors.New("invalid receipt image")
	ErrReceiptImageTooLarge = errors.New("receipt image exceeds maximum size")
	ErrUnauthorizedEmail    = errors.New("email not authorized")
)
