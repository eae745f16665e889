package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverhoef/splitty/internal/money"
)

func TestSettleWorkedExample(t *testing.T) {
	entries := []Entry{
		{Key: "dave", Balance: 3200},
		{Key: "eva", Balance: -4800},
		{Key: "mark", Balance: -2100},
		{Key: "anne", Balance: 3700},
	}

	result := Settle(entries)

	assert.Equal(t, []Transfer{
		{Amount: 3700, From: "anne", To: "eva"},
		{Amount: 2100, From: "dave", To: "mark"},
		{Amount: 1100, From: "dave", To: "eva"},
	}, result.Transfers)
	assert.Equal(t, money.Amount(0), result.Residual)
	assert.True(t, result.Settled())
}

// Applying every emitted transfer to the original balances must zero each
// participant.
func TestSettleZeroesBalances(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{
			name: "worked example",
			entries: []Entry{
				{"dave", 3200}, {"eva", -4800}, {"mark", -2100}, {"anne", 3700},
			},
		},
		{
			name:    "two parties",
			entries: []Entry{{"a", 500}, {"b", -500}},
		},
		{
			name: "many-to-one",
			entries: []Entry{
				{"a", 100}, {"b", 250}, {"c", 17}, {"d", -367},
			},
		},
		{
			name: "interleaved magnitudes",
			entries: []Entry{
				{"a", 9999}, {"b", -1}, {"c", -9000}, {"d", 2}, {"e", -1000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Settle(tt.entries)
			require.True(t, result.Settled())

			remaining := make(map[string]money.Amount, len(tt.entries))
			for _, e := range tt.entries {
				remaining[e.Key] = e.Balance
			}
			for _, tr := range result.Transfers {
				assert.Greater(t, tr.Amount, money.Amount(0))
				remaining[tr.From] -= tr.Amount
				remaining[tr.To] += tr.Amount
			}
			for key, v := range remaining {
				assert.Zero(t, v, "participant %s not settled", key)
			}
		})
	}
}

func TestSettleNothingOwed(t *testing.T) {
	result := Settle([]Entry{{"a", 0}, {"b", 0}})
	assert.Empty(t, result.Transfers)
	assert.True(t, result.Settled())
}

// Equal balances are matched in insertion order, so repeated runs give the
// same plan.
func TestSettleTieBreakInsertionOrder(t *testing.T) {
	entries := []Entry{
		{"a", 1000}, {"b", 1000}, {"c", -1000}, {"d", -1000},
	}

	want := []Transfer{
		{Amount: 1000, From: "a", To: "c"},
		{Amount: 1000, From: "b", To: "d"},
	}
	for i := 0; i < 50; i++ {
		result := Settle(entries)
		assert.Equal(t, want, result.Transfers)
	}
}

// An inconsistent balance set still yields the partial plan; the leftover
// shows up as the residual instead of disappearing.
func TestSettleResidual(t *testing.T) {
	result := Settle([]Entry{{"a", 5000}, {"b", -3000}})

	assert.Equal(t, []Transfer{{Amount: 3000, From: "a", To: "b"}}, result.Transfers)
	assert.Equal(t, money.Amount(2000), result.Residual)
	assert.False(t, result.Settled())

	result = Settle([]Entry{{"a", 3000}, {"b", -5000}})
	assert.Equal(t, money.Amount(-2000), result.Residual)
	assert.False(t, result.Settled())
}

func TestSettleOneCentResidualTolerated(t *testing.T) {
	result := Settle([]Entry{{"a", 101}, {"b", -100}})
	assert.Equal(t, money.Amount(1), result.Residual)
	assert.True(t, result.Settled())
}
