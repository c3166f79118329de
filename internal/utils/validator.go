package utils

import (
	"math"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= 6
}

func IsValidRole(role string) bool {
	return role == "admin" || role == "user"
}

func IsValidUserStatus(status string) bool {
	return status == "active" || status == "banned"
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

// ClampScore rounds a rating score and clamps it to 0..100.
func ClampScore(score float64) int {
	return int(math.Min(100, math.Max(0, math.Round(score))))
}
