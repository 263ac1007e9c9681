package api

import (
	"strings"

	"github.com/rs/zerolog"
)

// sanitizedError logs the full internal error and returns a public-safe
// message. Internal details (table names, endpoints, stack traces) are never
// leaked to API consumers; the full error goes to the server log.
func sanitizedError(logger zerolog.Logger, err error) string {
	msg := safeErrorMessage(err)
	logger.Error().Err(err).Msg(msg)
	return msg
}

// safeErrorMessage maps common internal error patterns to public-safe
// messages.
func safeErrorMessage(err error) string {
	if err == nil {
		return "An internal error occurred"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp"):
		return "Service temporarily unavailable"

	case strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "context canceled"):
		return "Request timed out"

	case strings.Contains(errStr, "dynamodb") ||
		strings.Contains(errStr, "query") ||
		strings.Contains(errStr, "throttl"):
		return "A storage error occurred"

	case strings.Contains(errStr, "s3") ||
		strings.Contains(errStr, "bucket") ||
		strings.Contains(errStr, "nosuchkey"):
		return "A storage error occurred"

	case strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") ||
		strings.Contains(errStr, "parse"):
		return "Invalid data format"

	case strings.Contains(errStr, "access denied") ||
		strings.Contains(errStr, "permission"):
		return "Access denied"

	default:
		return "An internal error occurred"
	}
}
