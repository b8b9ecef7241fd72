package cityinfo

import (
	"errors"
	"fmt"
)

var (
	ErrCityNotFound    = errors.New("city not found")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrMissingContent  = errors.New("recipe content is required")
	ErrContentTooShort = errors.New("content too short")
	ErrContentTooLong  = errors.New("content too long")
)

// UpstreamError reports a city detail fetch that failed for a reason other
// than the city not existing.
type UpstreamError struct {
	CityID string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream city lookup for %q failed: %v", e.CityID, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
