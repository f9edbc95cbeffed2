package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the gateway and the report API.
var (
	// Gateway errors
	ErrConfigurationMissing = errors.New("client secret not configured")
	ErrInvalidAttempt       = errors.New("invalid or expired login attempt")
	ErrUpstreamExchange     = errors.New("token exchange failed")
	ErrSessionNotFound      = errors.New("session not found")
	ErrStateNotFound        = errors.New("state not found")

	// Token validation errors
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrTokenVerification = errors.New("token verification failed")

	// Report errors
	ErrNoReportData     = errors.New("no report data available")
	ErrStoreUnavailable = errors.New("report store unavailable")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
