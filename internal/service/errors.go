package service

import "errors"

var (
	ErrSlotUnavailable   = errors.New("slot is not available")
	ErrSlotInPast        = errors.New("slot is in the past")
	ErrForbidden         = errors.New("action is not allowed for this account")
	ErrInvalidTransition = errors.New("booking status cannot change this way")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrChildNotFound     = errors.New("child not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrProgramComplete   = errors.New("swim program is already complete")
)
