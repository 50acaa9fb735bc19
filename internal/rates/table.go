package rates

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one raw (currency, rate) pair as delivered by the feed.
type Entry struct {
	Currency string
	Value    string
}

// Snapshot is one immutable generation of the rate table.
// All rates are relative to the base currency.
type Snapshot struct {
	generation  uint64
	refreshedAt time.Time
	base        string
	skipped     int
	rates       map[string]decimal.Decimal
}

func (s *Snapshot) Generation() uint64     { return s.generation }
func (s *Snapshot) RefreshedAt() time.Time { return s.refreshedAt }
func (s *Snapshot) Base() string           { return s.base }
func (s *Snapshot) Skipped() int           { return s.skipped }
func (s *Snapshot) Len() int               { return len(s.rates) }

func (s *Snapshot) Lookup(code string) (decimal.Decimal, bool) {
	rate, ok := s.rates[code]
	return rate, ok
}

// Rates returns a copy of the snapshot contents.
func (s *Snapshot) Rates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.rates))
	for k, v := range s.rates {
		out[k] = v
	}
	return out
}

// Table holds the current snapshot. Refresh swaps it wholesale, readers never lock.
type Table struct {
	base    string
	current atomic.Pointer[Snapshot]
	writeMu sync.Mutex
	log     *slog.Logger
}

func NewTable(base string, log *slog.Logger) *Table {
	base = strings.ToUpper(base)
	t := &Table{
		base: base,
		log:  log.With(slog.String("component", "rate_table")),
	}
	t.current.Store(&Snapshot{
		base:  base,
		rates: map[string]decimal.Decimal{base: decimal.NewFromInt(1)},
	})
	return t
}

func (t *Table) Base() string { return t.base }

// Build parses raw entries into an unpublished snapshot.
// Entries that do not parse to a positive decimal are skipped.
func (t *Table) Build(entries []Entry) *Snapshot {
	rates := make(map[string]decimal.Decimal, len(entries)+1)
	skipped := 0
	for _, e := range entries {
		value, err := decimal.NewFromString(strings.TrimSpace(e.Value))
		if err != nil || !value.IsPositive() {
			skipped++
			t.log.Warn("skipping unparsable rate",
				slog.String("currency", e.Currency),
				slog.String("value", e.Value))
			continue
		}
		rates[e.Currency] = value
	}
	rates[t.base] = decimal.NewFromInt(1)

	return &Snapshot{
		base:    t.base,
		skipped: skipped,
		rates:   rates,
	}
}

// Publish stamps snap as the next generation and makes it current.
func (t *Table) Publish(snap *Snapshot) *Snapshot {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	snap.generation = t.current.Load().generation + 1
	snap.refreshedAt = time.Now()
	t.current.Store(snap)

	t.log.Info("rate table refreshed",
		slog.Uint64("generation", snap.generation),
		slog.Int("currencies", len(snap.rates)),
		slog.Int("skipped", snap.skipped))

	return snap
}

// Refresh builds the next generation from raw entries and publishes it.
func (t *Table) Refresh(entries []Entry) *Snapshot {
	return t.Publish(t.Build(entries))
}

func (t *Table) Snapshot() *Snapshot {
	return t.current.Load()
}

func (t *Table) Lookup(code string) (decimal.Decimal, bool) {
	return t.current.Load().Lookup(code)
}
