package scan

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Size multipliers. All units are binary, including the two-letter forms:
// "10KB" means 10*1024 bytes, matching the report's formatting.
const (
	KB int64 = 1024
	MB int64 = 1024 * KB
	GB int64 = 1024 * MB
	TB int64 = 1024 * GB
)

// ErrInvalidSize indicates that a size string could not be parsed.
var ErrInvalidSize = errors.New("invalid size format")

// sizePattern matches size strings like "10MB", "500kb", "1.5G".
var sizePattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)\s*([A-Za-z]+)$`)

// sizeUnits maps unit suffixes to their byte multipliers.
var sizeUnits = map[string]int64{
	"B":  1,
	"K":  KB,
	"KB": KB,
	"M":  MB,
	"MB": MB,
	"G":  GB,
	"GB": GB,
	"T":  TB,
	"TB": TB,
}

// ParseSize parses a human-readable size string into bytes.
// Bare digits are taken as bytes; otherwise a decimal number followed by a
// unit (B, K/KB, M/MB, G/GB, T/TB, case-insensitive) is expected.
func ParseSize(input string) (int64, error) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if input == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSize)
	}

	if bytes, err := strconv.ParseInt(input, 10, 64); err == nil {
		return bytes, nil
	}

	matches := sizePattern.FindStringSubmatch(input)
	if matches == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, input)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, input)
	}

	multiplier, ok := sizeUnits[matches[2]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q (supported: B, KB, MB, GB, TB)", ErrInvalidSize, matches[2])
	}

	return int64(value * float64(multiplier)), nil
}

// FormatSize converts bytes to a human-readable string with two decimal
// places and binary units, e.g. 1536 -> "1.50 KB". Zero is the literal "0 B".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(bytes)
	index := 0

	for value >= 1024 && index < len(units)-1 {
		value /= 1024
		index++
	}

	return fmt.Sprintf("%.2f %s", value, units[index])
}
