// Package duration parses and formats colon-separated countdown durations.
// The grammar is [[[d:]h:]m:]s — up to four unsigned integer fields read
// right-to-left as seconds, minutes, hours, days. Fields may be omitted only
// from the left, so "3" is three seconds and "2:3" is two minutes three
// seconds.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Seconds-per-field multipliers, rightmost field first.
var multipliers = [maxFields]uint64{1, 60, 3600, 86400}

const (
	maxFields = 4

	// maxSeconds is the largest whole-second total representable as a
	// time.Duration without overflowing its nanosecond count.
	maxSeconds = uint64(math.MaxInt64 / int64(time.Second))
)

// ParseError describes a malformed duration string.
type ParseError struct {
	// Input is the full string that failed to parse.
	Input string
	// Reason is a human-readable description of the failure.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid duration %q: %s", e.Input, e.Reason)
}

// Fields holds a duration decomposed for display. The values are derived
// from the total on demand and never stored alongside it.
type Fields struct {
	Days    uint64
	Hours   uint64
	Minutes uint64
	Seconds uint64
}

// Parse converts a colon-separated duration string into a time.Duration.
// It returns a *ParseError when the string is empty, has more than four
// fields, contains a field that is not a plain unsigned decimal integer
// (signs and whitespace included), or when the total overflows the
// representable range.
func Parse(s string) (time.Duration, error) {
	if s == "" {
		return 0, &ParseError{Input: s, Reason: "empty string, provide at least a seconds field"}
	}

	parts := strings.Split(s, ":")
	if len(parts) > maxFields {
		return 0, &ParseError{
			Input:  s,
			Reason: fmt.Sprintf("%d fields, at most 4 (days:hours:minutes:seconds) are allowed", len(parts)),
		}
	}

	var total uint64
	for i, part := range parts {
		// strconv.ParseUint rejects signs and surrounding whitespace,
		// which is exactly the field grammar we want.
		value, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return 0, &ParseError{
				Input:  s,
				Reason: fmt.Sprintf("field %q is not an unsigned integer", part),
			}
		}

		mult := multipliers[len(parts)-1-i]
		if value > maxSeconds/mult {
			return 0, &ParseError{Input: s, Reason: "duration overflows the representable range"}
		}
		add := value * mult
		if total > maxSeconds-add {
			return 0, &ParseError{Input: s, Reason: "duration overflows the representable range"}
		}
		total += add
	}

	return time.Duration(total) * time.Second, nil
}

// Decompose splits a non-negative duration into display fields.
// Sub-second precision is truncated.
func Decompose(d time.Duration) Fields {
	if d < 0 {
		d = 0
	}
	total := uint64(d / time.Second)
	return Fields{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// Format renders a duration in the canonical form accepted by Parse:
// leading zero fields are omitted, the leading field is unpadded, and every
// inner field is zero-padded to two digits. Examples: 5 -> "5",
// 123 -> "2:03", 93784 -> "1:02:03:04".
func Format(d time.Duration) string {
	f := Decompose(d)

	switch {
	case f.Days > 0:
		return fmt.Sprintf("%d:%02d:%02d:%02d", f.Days, f.Hours, f.Minutes, f.Seconds)
	case f.Hours > 0:
		return fmt.Sprintf("%d:%02d:%02d", f.Hours, f.Minutes, f.Seconds)
	case f.Minutes > 0:
		return fmt.Sprintf("%d:%02d", f.Minutes, f.Seconds)
	default:
		return strconv.FormatUint(f.Seconds, 10)
	}
}

// FormatCeil is Format with sub-second remainders rounded up to the next
// whole second, so a live countdown shows "5" for the full first second
// instead of jumping to "4" immediately.
func FormatCeil(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if rem := d % time.Second; rem > 0 {
		d += time.Second - rem
	}
	return Format(d)
}
