package model

import "errors"

var (
	// ErrInvalidSelection is returned when no company is selected.
	ErrInvalidSelection = errors.New("invalid selection: select at least one company")
	// ErrPriceFetchFailed wraps provider failures and empty responses.
	ErrPriceFetchFailed = errors.New("price fetch failed")
	// ErrRenderFailure marks malformed data reaching the chart step.
	ErrRenderFailure = errors.New("render failure")
)
