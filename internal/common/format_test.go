package common

import "testing"

func TestPadZero(t *testing.T) {
	tests := []struct {
		n, width int
		want     string
	}{
		{1, 2, "01"},
		{12, 2, "12"},
		{123, 2, "123"},
		{0, 3, "000"},
		{7, 0, "7"},
		{-5, 2, "-05"},
	}

	for _, tt := range tests {
		if got := PadZero(tt.n, tt.width); got != tt.want {
			t.Errorf("PadZero(%d, %d) = %q, want %q", tt.n, tt.width, got, tt.want)
		}
	}
}
