package core

import "testing"

func TestItoa(t *testing.T) {
	testCases := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{7, "7"},
		{42, "42"},
		{-42, "-42"},
		{115200, "115200"},
	}

	for _, tc := range testCases {
		if got := Itoa(tc.n); got != tc.expected {
			t.Errorf("Itoa(%d) = %q, expected %q", tc.n, got, tc.expected)
		}
	}
}

func TestHex(t *testing.T) {
	testCases := []struct {
		n        uint64
		expected string
	}{
		{0, "0x0"},
		{0xA, "0xa"},
		{0x4006A000, "0x4006a000"},
	}

	for _, tc := range testCases {
		if got := Hex(tc.n); got != tc.expected {
			t.Errorf("Hex(%d) = %q, expected %q", tc.n, got, tc.expected)
		}
	}
}
