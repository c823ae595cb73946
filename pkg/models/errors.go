package models

import "errors"

var (
	ErrAlreadyReviewed   = errors.New("product already reviewed")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
