package ticket

import "errors"

var (
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrEmptyPatch        = errors.New("ticket update has no fields")
	ErrTicketClosed      = errors.New("ticket is already closed")
	ErrInvalidStatus     = errors.New("invalid ticket status")
	ErrInvalidTransition = errors.New("closed tickets cannot change status")
	ErrTicketIDCollision = errors.New("generated ticket id already exists")
	ErrInvalidTicketID   = errors.New("ticket id is required")
	ErrInvalidRetention  = errors.New("retention days must not be negative")
)
