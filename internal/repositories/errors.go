package repositories

import "errors"

// Sentinel errors returned by repository implementations. Services translate
// these into apperrors values; handlers never see them directly.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrNationalIDNotFound  = errors.New("national id not found")
	ErrTradeNotFound       = errors.New("trade not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrTokenNotFound       = errors.New("refresh token not found")

	// ErrDuplicateKey surfaces a unique-constraint violation, e.g. the loser
	// of a concurrent duplicate-application or national-ID-link race.
	ErrDuplicateKey = errors.New("duplicate key")
)
