package astar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInts(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		vals   []int64
		errMsg string
	}{
		{"ok", []string{"150", "-150"}, []int64{150, -150}, ""},
		{"hex", []string{"0x10", "0"}, []int64{16, 0}, ""},
		{"extra args ignored", []string{"1", "2", "3"}, []int64{1, 2}, ""},
		{"missing", []string{"1"}, nil, "LEFT RIGHT required"},
		{"invalid", []string{"1", "x"}, nil, "invalid RIGHT"},
		{"range", []string{"40000", "0"}, nil, "LEFT out of range"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vals, err := parseInts(tc.args, []string{"LEFT", "RIGHT"}, -0x8000, 0x7fff)
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.vals, vals)
		})
	}
}
