package ports

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrAlreadyClaimed = errors.New("item already claimed")
	ErrNotOwned       = errors.New("item not owned")
	ErrSlotsFull      = errors.New("equip slots full")
)
