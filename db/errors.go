package db

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrRequestNotFound   = errors.New("borrow request not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotPending        = errors.New("request is not pending")
	ErrNotOwner          = errors.New("request belongs to another user")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownStatus     = errors.New("unknown status")
	ErrEquipmentMismatch = errors.New("equipment does not match request")
)
