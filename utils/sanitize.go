package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips any HTML from user-entered names and labels.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
