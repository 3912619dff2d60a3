package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckRawSize(t *testing.T) {
	require.NoError(t, checkRawSize(8))
	require.NoError(t, checkRawSize(32))
	for _, size := range []int{0, 5, 16, 33} {
		require.Error(t, checkRawSize(size), "%d", size)
	}
}

func TestClampSpeed(t *testing.T) {
	require.Equal(t, int16(120), clampSpeed(500, 120))
	require.Equal(t, int16(-120), clampSpeed(-500, 120))
	require.Equal(t, int16(50), clampSpeed(50, 120))
	require.Equal(t, int16(300), clampSpeed(400, 300))
}
