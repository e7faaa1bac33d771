package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for empty names and traversal attempts.
var ErrInvalidFileName = errors.New("invalid file name")

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName makes an uploaded file name safe to use in object keys:
// separators become underscores, traversal sequences are rejected outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	cleaned := pathSeparators.Replace(strings.TrimSpace(name))
	if cleaned == "" {
		return "", ErrInvalidFileName
	}
	return cleaned, nil
}
