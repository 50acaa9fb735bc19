package rates

import (
	"log/slog"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestTable_InitialSnapshotHoldsOnlyBase(t *testing.T) {
	table := NewTable("eur", testLogger())

	snap := table.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, uint64(0), snap.Generation())
	assert.Equal(t, "EUR", snap.Base())
	assert.Equal(t, 1, snap.Len())

	rate, ok := table.Lookup("EUR")
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))

	_, ok = table.Lookup("USD")
	assert.False(t, ok)
}

func TestTable_Refresh_SkipsBadEntries(t *testing.T) {
	table := NewTable("EUR", testLogger())

	snap := table.Refresh([]Entry{
		{Currency: "USD", Value: "1.0866"},
		{Currency: "JPY", Value: " 169.03 "},
		{Currency: "BAD", Value: "n/a"},
		{Currency: "EMP", Value: ""},
		{Currency: "NEG", Value: "-1.5"},
		{Currency: "ZER", Value: "0"},
	})

	assert.Equal(t, uint64(1), snap.Generation())
	assert.Equal(t, 4, snap.Skipped())
	assert.Equal(t, 3, snap.Len())

	usd, ok := snap.Lookup("USD")
	require.True(t, ok)
	assert.Equal(t, "1.0866", usd.String())

	jpy, ok := snap.Lookup("JPY")
	require.True(t, ok)
	assert.Equal(t, "169.03", jpy.String())

	for _, code := range []string{"BAD", "EMP", "NEG", "ZER"} {
		_, ok := snap.Lookup(code)
		assert.False(t, ok, code)
	}

	eur, ok := snap.Lookup("EUR")
	require.True(t, ok)
	assert.True(t, eur.Equal(decimal.NewFromInt(1)))
}

func TestTable_Refresh_BaseAlwaysOne(t *testing.T) {
	table := NewTable("EUR", testLogger())

	snap := table.Refresh([]Entry{{Currency: "EUR", Value: "0.97"}})

	eur, ok := snap.Lookup("EUR")
	require.True(t, ok)
	assert.True(t, eur.Equal(decimal.NewFromInt(1)))
}

func TestTable_Refresh_ReplacesWholesale(t *testing.T) {
	table := NewTable("EUR", testLogger())

	first := table.Refresh([]Entry{{Currency: "USD", Value: "1.1"}, {Currency: "GBP", Value: "0.85"}})
	second := table.Refresh([]Entry{{Currency: "USD", Value: "1.2"}})

	assert.Equal(t, uint64(2), second.Generation())
	assert.Same(t, second, table.Snapshot())

	_, ok := table.Lookup("GBP")
	assert.False(t, ok, "entries absent from the new feed must disappear")

	usd, _ := first.Lookup("USD")
	assert.Equal(t, "1.1", usd.String(), "old snapshot must stay unchanged")
	_, ok = first.Lookup("GBP")
	assert.True(t, ok)
}

func TestSnapshot_RatesReturnsCopy(t *testing.T) {
	table := NewTable("EUR", testLogger())
	table.Refresh([]Entry{{Currency: "USD", Value: "1.1"}})

	rates := table.Snapshot().Rates()
	rates["USD"] = decimal.NewFromInt(42)
	delete(rates, "EUR")

	usd, _ := table.Lookup("USD")
	assert.Equal(t, "1.1", usd.String())
	_, ok := table.Lookup("EUR")
	assert.True(t, ok)
}

func TestTable_Build_DoesNotPublish(t *testing.T) {
	table := NewTable("EUR", testLogger())
	before := table.Snapshot()

	snap := table.Build([]Entry{
		{Currency: "USD", Value: "1.2"},
		{Currency: "ZER", Value: "0"},
	})

	assert.Equal(t, 1, snap.Skipped())
	assert.Equal(t, 2, snap.Len())
	assert.Same(t, before, table.Snapshot())
	_, ok := table.Lookup("USD")
	assert.False(t, ok)

	published := table.Publish(snap)

	assert.Same(t, snap, table.Snapshot())
	assert.Equal(t, uint64(1), published.Generation())
	assert.False(t, published.RefreshedAt().IsZero())
	_, ok = table.Lookup("ZER")
	assert.False(t, ok)
}
