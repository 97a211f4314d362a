package domain

import "errors"

// Business-rule rejections. Every kind maps to a distinct user-visible
// failure; storage faults are wrapped separately and never use these.
var (
	// ErrUserNotFound means the referenced user identifier does not resolve
	ErrUserNotFound = errors.New("user not found")

	// ErrSenderNotFound means a transfer named an unknown sender
	ErrSenderNotFound = errors.New("sender not found")

	// ErrRecipientNotFound means a transfer named an unknown recipient
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrInsufficientFunds means the requested amount exceeds the payer's computed balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStatementNotFound means the entry does not exist or belongs to another user
	ErrStatementNotFound = errors.New("statement not found")

	// ErrIncorrectCredentials means the email is unknown or the password does not match
	ErrIncorrectCredentials = errors.New("incorrect email or password")

	// ErrDuplicateEmail means signup used an already-registered email
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrAmountMustBePositive rejects zero or negative operation amounts
	ErrAmountMustBePositive = errors.New("amount must be positive")
)
