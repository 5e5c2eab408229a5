package common

import (
	"fmt"
	"slices"
	"strings"

	"resumetric/internal/errors"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}

// ValidateResumeText checks that resume text is non-blank
func ValidateResumeText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"resume text must not be empty", nil)
	}
	return nil
}

// ValidateJobDescription checks that job description text is non-blank
func ValidateJobDescription(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"job description must not be empty", nil)
	}
	return nil
}
