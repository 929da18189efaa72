package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      []Quote
		expected Catalog
	}{
		{
			name:     "empty sequence",
			raw:      nil,
			expected: Catalog{},
		},
		{
			name: "distinct symbols pass through",
			raw: []Quote{
				{Currency: "ETH", AsOf: base, Price: 1800},
				{Currency: "BTC", AsOf: base, Price: 30000},
			},
			expected: Catalog{
				"ETH": {Currency: "ETH", AsOf: base, Price: 1800},
				"BTC": {Currency: "BTC", AsOf: base, Price: 30000},
			},
		},
		{
			name: "latest asOf wins per symbol",
			raw: []Quote{
				{Currency: "ETH", AsOf: base, Price: 1700},
				{Currency: "ETH", AsOf: base.Add(time.Hour), Price: 1800},
				{Currency: "ETH", AsOf: base.Add(-time.Hour), Price: 1600},
			},
			expected: Catalog{
				"ETH": {Currency: "ETH", AsOf: base.Add(time.Hour), Price: 1800},
			},
		},
		{
			name: "ties keep the first-seen entry",
			raw: []Quote{
				{Currency: "ETH", AsOf: base, Price: 1800},
				{Currency: "ETH", AsOf: base, Price: 9999},
			},
			expected: Catalog{
				"ETH": {Currency: "ETH", AsOf: base, Price: 1800},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := Reduce(tt.raw)
			assert.Equal(t, tt.expected, catalog)
		})
	}
}

func TestReduce_OneQuotePerDistinctSymbol(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := []Quote{
		{Currency: "ETH", AsOf: base, Price: 1800},
		{Currency: "BTC", AsOf: base.Add(time.Minute), Price: 30000},
		{Currency: "ETH", AsOf: base.Add(2 * time.Minute), Price: 1810},
		{Currency: "USD", AsOf: base, Price: 1},
		{Currency: "BTC", AsOf: base, Price: 29000},
	}

	catalog := Reduce(raw)

	require.Len(t, catalog, 3)
	for symbol, q := range catalog {
		assert.Equal(t, symbol, q.Currency)
		for _, r := range raw {
			if r.Currency == symbol {
				assert.False(t, r.AsOf.After(q.AsOf), "kept quote for %s is not the freshest", symbol)
			}
		}
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := []Quote{
		{Currency: "ETH", AsOf: base, Price: 1800},
		{Currency: "ETH", AsOf: base.Add(time.Hour), Price: 1810},
	}
	snapshot := make([]Quote, len(raw))
	copy(snapshot, raw)

	Reduce(raw)

	assert.Equal(t, snapshot, raw)
}

func TestConvert(t *testing.T) {
	eth := Quote{Currency: "ETH", Price: 1800}
	btc := Quote{Currency: "BTC", Price: 30000}

	t.Run("2 ETH converts to 0.12 BTC", func(t *testing.T) {
		converted, err := Convert(eth, btc, 2)
		require.NoError(t, err)
		assert.InDelta(t, 0.12, converted, 1e-12)
	})

	t.Run("scale-linear in the amount", func(t *testing.T) {
		one, err := Convert(eth, btc, 1)
		require.NoError(t, err)
		five, err := Convert(eth, btc, 5)
		require.NoError(t, err)
		assert.InEpsilon(t, 5*one, five, 1e-12)
	})

	t.Run("self-inverse under symbol swap", func(t *testing.T) {
		amount := 3.1415
		there, err := Convert(eth, btc, amount)
		require.NoError(t, err)
		back, err := Convert(btc, eth, there)
		require.NoError(t, err)
		assert.InEpsilon(t, amount, back, 1e-9)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		_, err := Convert(eth, btc, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		_, err := Convert(eth, btc, -2)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("non-positive price is rejected", func(t *testing.T) {
		_, err := Convert(Quote{Currency: "BAD", Price: 0}, btc, 1)
		assert.ErrorIs(t, err, ErrInvalidQuote)

		_, err = Convert(eth, Quote{Currency: "BAD", Price: -3}, 1)
		assert.ErrorIs(t, err, ErrInvalidQuote)
	})
}

func TestCatalogConvert(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	catalog := Reduce([]Quote{
		{Currency: "ETH", AsOf: base, Price: 1800},
		{Currency: "BTC", AsOf: base, Price: 30000},
	})

	t.Run("resolves both symbols and converts", func(t *testing.T) {
		converted, err := catalog.Convert("ETH", "BTC", 2)
		require.NoError(t, err)
		assert.InDelta(t, 0.12, converted, 1e-12)
	})

	t.Run("unknown from symbol", func(t *testing.T) {
		_, err := catalog.Convert("DOGE", "BTC", 2)
		require.ErrorIs(t, err, ErrQuoteUnavailable)
		assert.EqualError(t, err, "price unavailable for DOGE")
	})

	t.Run("unknown to symbol", func(t *testing.T) {
		_, err := catalog.Convert("ETH", "DOGE", 2)
		require.ErrorIs(t, err, ErrQuoteUnavailable)
		assert.EqualError(t, err, "price unavailable for DOGE")
	})
}
