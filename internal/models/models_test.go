package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeValid(t *testing.T) {
	for _, s := range Sizes {
		require.True(t, s.Valid(), "size %s should be valid", s)
	}
	require.False(t, Size("XXXL").Valid())
	require.False(t, Size("m").Valid())
	require.False(t, Size("").Valid())
}

func TestOrderStatusValid(t *testing.T) {
	require.True(t, OrderStatusPending.Valid())
	require.True(t, OrderStatusCompleted.Valid())
	require.True(t, OrderStatusQRDeleted.Valid())
	require.False(t, OrderStatus("Shipped").Valid())
	require.False(t, OrderStatus("pending").Valid())
}
