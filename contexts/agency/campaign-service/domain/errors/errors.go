package errors

import "errors"

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrOwnerRequired    = errors.New("owner id is required")
	ErrStoreFailure     = errors.New("campaign store failure")
)
