// Package hours converts between the wire format for slot boundaries and the
// whole-hour integers the engine works with. Hours cross the HTTP boundary as
// zero-padded "HH:00" strings; no sub-hour precision exists anywhere.
package hours

import (
	"fmt"
	"regexp"
)

// PerDay is the number of bookable start hours in a day. 24 itself is a legal
// end bound ("24:00") but never a start.
const PerDay = 24

var wireFormat = regexp.MustCompile(`^([01][0-9]|2[0-4]):00$`)

// Parse converts a boundary string like "09:00" to its hour integer.
// Accepts 00:00 through 24:00 inclusive; anything else, including sub-hour
// values like "09:30", is rejected.
func Parse(s string) (int, error) {
	if !wireFormat.MatchString(s) {
		return 0, fmt.Errorf("invalid hour %q, expected zero-padded \"HH:00\" between 00:00 and 24:00", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	return h, nil
}

// Format renders an hour integer as its wire form, e.g. 9 -> "09:00".
func Format(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// FormatAll renders a slice of hours, preserving order.
func FormatAll(hs []int) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = Format(h)
	}
	return out
}
