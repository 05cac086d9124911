package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxCompanyIDLen = 32 // companies.company_id VARCHAR(32)
	MaxPromiseIDLen = 32 // promises.promise_id VARCHAR(32)
	MaxUserIDLen    = 64 // users.user_id VARCHAR(64)
	MaxDimensionLen = 24 // votes.dimension VARCHAR(24)
)

var (
	// slugRe matches company and promise IDs: lowercase slug characters.
	slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	// userIDRe matches user IDs: hex SHA256 hashes (64 chars) or shorter hashed IDs.
	userIDRe = regexp.MustCompile(`^[0-9a-f]+$`)
	// dimensionRe matches dimension names: lowercase words.
	dimensionRe = regexp.MustCompile(`^[a-z][a-z_]*$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateCompanyID checks that a company ID is well-formed and within DB limits.
func ValidateCompanyID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "companyId is required"
	}
	if len(id) > MaxCompanyIDLen {
		return "", "companyId must be at most 32 characters"
	}
	if !slugRe.MatchString(id) {
		return "", "companyId contains invalid characters"
	}
	return id, ""
}

// ValidatePromiseID checks that a promise ID is well-formed.
func ValidatePromiseID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "promiseId is required"
	}
	if len(id) > MaxPromiseIDLen {
		return "", "promiseId must be at most 32 characters"
	}
	if !slugRe.MatchString(id) {
		return "", "promiseId contains invalid characters"
	}
	return id, ""
}

// ValidateUserID checks that a user ID is a valid hex hash.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "voterId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "voterId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "voterId must be a hexadecimal hash"
	}
	return id, ""
}

// ValidateDimension checks the dimension name shape. Membership in the
// configured dimension set is the engine's concern, not the transport's.
func ValidateDimension(d string) (string, string) {
	d = strings.TrimSpace(strings.ToLower(d))
	if d == "" {
		return "", "dimension is required"
	}
	if len(d) > MaxDimensionLen {
		return "", "dimension must be at most 24 characters"
	}
	if !dimensionRe.MatchString(d) {
		return "", "dimension contains invalid characters"
	}
	return d, ""
}
