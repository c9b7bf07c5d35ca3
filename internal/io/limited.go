package io

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charliek/git-preserves/internal/domain"
)

// LimitedReadAll reads from r up to maxBytes.
// If the reader holds more than maxBytes, it returns an ErrOutputTooLarge error
func LimitedReadAll(r io.Reader, maxBytes int64, context string) ([]byte, error) {
	// Read one extra byte to detect overflow
	limitedReader := io.LimitReader(r, maxBytes+1)

	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > maxBytes {
		return nil, domain.Errorf(domain.ErrOutputTooLarge,
			"%s exceeds maximum size of %d bytes", context, maxBytes)
	}

	return data, nil
}

// ReadText is LimitedReadAll for text streams: the content must be valid
// UTF-8 or an ErrEncoding error is returned
func ReadText(r io.Reader, maxBytes int64, context string) (string, error) {
	data, err := LimitedReadAll(r, maxBytes, context)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", domain.Errorf(domain.ErrEncoding, "%s is not valid UTF-8", context)
	}
	return string(data), nil
}

// FormatSize returns a human-readable size string
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
