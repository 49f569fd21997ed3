package utils

import "strings"

// SplitFullName returns the first token as the first name and the remaining
// tokens as the last name.
func SplitFullName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
