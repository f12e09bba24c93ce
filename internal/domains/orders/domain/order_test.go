package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validItem(t *testing.T, widthCm, heightCm int) OrderItem {
	t.Helper()
	cfg := BannerConfig{WidthCm: widthCm, HeightCm: heightCm, Material: MaterialVinyl}
	price, err := Price(cfg)
	require.NoError(t, err)
	cfg.CalculatedPrice = price
	return OrderItem{Config: cfg, Price: price}
}

func TestNewOrder_TotalMustEqualItemSum(t *testing.T) {
	items := []OrderItem{validItem(t, 100, 50), validItem(t, 200, 100)}
	sum := items[0].Price.Add(items[1].Price)

	order, err := NewOrder("user-1", "+91-9876543210", sum, items)
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.True(t, order.TotalPrice.Equal(sum))

	_, err = NewOrder("user-1", "+91-9876543210", sum.Add(decimal.NewFromInt(1)), items)
	require.ErrorIs(t, err, ErrTotalMismatch)
}

func TestNewOrder_RequiresContactAndItems(t *testing.T) {
	items := []OrderItem{validItem(t, 100, 50)}

	_, err := NewOrder("user-1", "", items[0].Price, items)
	require.ErrorIs(t, err, ErrEmptyContactNumber)

	_, err = NewOrder("user-1", "+91-9876543210", decimal.Zero, nil)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestUpdateStatus(t *testing.T) {
	items := []OrderItem{validItem(t, 100, 50)}
	order, err := NewOrder("user-1", "+91-9876543210", items[0].Price, items)
	require.NoError(t, err)

	for _, status := range []Status{StatusProcessing, StatusCompleted, StatusCancelled, StatusPending} {
		require.NoError(t, order.UpdateStatus(status))
		require.Equal(t, status, order.Status)
	}

	require.ErrorIs(t, order.UpdateStatus("shipped"), ErrInvalidStatus)

	// Empty status defaults to pending.
	require.NoError(t, order.UpdateStatus(""))
	require.Equal(t, StatusPending, order.Status)
}
