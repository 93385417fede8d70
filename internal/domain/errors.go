package domain

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrMissingCreatedAt = errors.New("created-at is missing")
	ErrUnparseableDate  = errors.New("created-at is not a valid timestamp")
	ErrInvalidValidity  = errors.New("validity days must be positive")
	ErrCreatedInFuture  = errors.New("created-at is after the evaluation day")
)
