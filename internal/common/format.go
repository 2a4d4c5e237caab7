package common

import (
	"strconv"
	"strings"
)

// PadZero pads an integer with leading zeros to reach the specified width.
// Negative numbers keep their sign in front of the padding.
func PadZero(n, width int) string {
	if n < 0 {
		return "-" + PadZero(-n, width)
	}
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
