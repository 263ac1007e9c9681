package domain

import (
	"errors"
	"fmt"
)

// ErrNoActiveIteration is returned by CampaignConfig.CurrentIteration when no
// iteration date falls on or before the evaluation date. Callers treat this
// as "skip the campaign", not as a failure.
var ErrNoActiveIteration = errors.New("campaign has no active iteration")

// ConfigurationError marks a fault in campaign authoring: an unknown
// operator, an unmapped attribute level, a malformed token, an unregistered
// derived-value function. These are never recovered locally; they surface to
// the caller as a distinguishable error kind so the API boundary can report
// a server-side fault rather than an empty decision.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "campaign configuration error: " + e.Detail
}

// NewConfigurationError builds a ConfigurationError with a formatted detail.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
