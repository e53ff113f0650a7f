package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// upidPattern matches a Unified Project ID: S2P-{sequence}-{year}.
// Uses "-" as separator to avoid conflicts with client reference numbers
// that contain "/".
var upidPattern = regexp.MustCompile(`^S2P-([1-9]\d*)-(\d{4})$`)

// FormatUPID constructs a Unified Project ID from its components.
// Format: S2P-{sequence}-{year}, e.g. S2P-42-2026. The sequence restarts
// each calendar year; the caller owns sequence allocation.
func FormatUPID(sequence, year int) string {
	return fmt.Sprintf("S2P-%d-%d", sequence, year)
}

// ParseUPID splits a Unified Project ID into sequence and year.
func ParseUPID(upid string) (sequence, year int, err error) {
	m := upidPattern.FindStringSubmatch(strings.TrimSpace(upid))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid UPID %q: want S2P-{sequence}-{year}", upid)
	}
	sequence, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid UPID sequence %q: %w", m[1], err)
	}
	year, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid UPID year %q: %w", m[2], err)
	}
	return sequence, year, nil
}

// ValidateUPID reports whether upid is well-formed.
func ValidateUPID(upid string) bool {
	_, _, err := ParseUPID(upid)
	return err == nil
}
