package domain

import "errors"

var (
	ErrBusy     = errors.New("submission already in progress")
	ErrNoResult = errors.New("no result available")
)
