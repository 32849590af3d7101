// Package validation contains input validation shared across services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9-]{3,30}$`)

var reservedUsernames = map[string]struct{}{
	"admin":       {},
	"api":         {},
	"auth":        {},
	"me":          {},
	"settings":    {},
	"clips":       {},
	"comments":    {},
	"leaderboard": {},
	"sports":      {},
	"streak":      {},
	"upload":      {},
	"profile":     {},
	"metrics":     {},
	"health":      {},
	"flags":       {},
	"login":       {},
	"signup":      {},
}

// ValidateUsername validates username format and reserved names.
// Usernames are expected to be lowercased and trimmed already.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-30 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(username, "-") || strings.HasSuffix(username, "-") {
		return fmt.Errorf("username cannot start or end with a hyphen")
	}

	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}
