package split

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverhoef/splitty/internal/money"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		total  money.Amount
		shares []Share
		want   map[string]money.Amount
	}{
		{
			name:   "even division",
			total:  12000, // 120.00
			shares: []Share{{"dave", 1}, {"eva", 1}, {"mark", 1}, {"anne", 1}},
			want:   map[string]money.Amount{"dave": 3000, "eva": 3000, "mark": 3000, "anne": 3000},
		},
		{
			name:   "remainder cent goes to first participant",
			total:  10000, // 100.00 over 3
			shares: []Share{{"a", 1}, {"b", 1}, {"c", 1}},
			want:   map[string]money.Amount{"a": 3334, "b": 3333, "c": 3333},
		},
		{
			name:   "single participant gets everything",
			total:  9999,
			shares: []Share{{"solo", 1}},
			want:   map[string]money.Amount{"solo": 9999},
		},
		{
			name:   "zero amount yields zero shares",
			total:  0,
			shares: []Share{{"a", 1}, {"b", 3}},
			want:   map[string]money.Amount{"a": 0, "b": 0},
		},
		{
			name:   "weighted split",
			total:  9000, // 90.00, weights 2:1 -> 60/30
			shares: []Share{{"a", 2}, {"b", 1}},
			want:   map[string]money.Amount{"a": 6000, "b": 3000},
		},
		{
			name:   "weighted split with negative remainder",
			total:  10000, // unit share 16.67 -> 3*1667*2 = 10002, two cents back
			shares: []Share{{"a", 3}, {"b", 3}},
			want:   map[string]money.Amount{"a": 5000, "b": 5000},
		},
		{
			name:   "non-dividing weights",
			total:  10000, // unit 100.00/7 -> 14.29
			shares: []Share{{"a", 3}, {"b", 2}, {"c", 2}},
			want:   map[string]money.Amount{"a": 4286, "b": 2857, "c": 2857},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.total, tt.shares)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitErrors(t *testing.T) {
	tests := []struct {
		name   string
		total  money.Amount
		shares []Share
		want   error
	}{
		{name: "no participants", total: 100, shares: nil, want: ErrNoParticipants},
		{name: "negative amount", total: -1, shares: []Share{{"a", 1}}, want: ErrNegativeAmount},
		{name: "zero weight", total: 100, shares: []Share{{"a", 0}}, want: ErrInvalidWeight},
		{name: "negative weight", total: 100, shares: []Share{{"a", 1}, {"b", -2}}, want: ErrInvalidWeight},
		{name: "duplicate key", total: 100, shares: []Share{{"a", 1}, {"a", 2}}, want: ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split(tt.total, tt.shares)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// Shares must sum back to the total for any amount/weight combination, not
// just the friendly ones.
func TestSplitExactness(t *testing.T) {
	amounts := []money.Amount{0, 1, 2, 7, 99, 100, 3333, 10000, 10001, 99999, 123457}
	weightSets := [][]Share{
		{{"a", 1}},
		{{"a", 1}, {"b", 1}},
		{{"a", 1}, {"b", 1}, {"c", 1}},
		{{"a", 1}, {"b", 2}, {"c", 3}},
		{{"a", 7}, {"b", 11}},
		{{"a", 5}, {"b", 5}},
		{{"a", 100}, {"b", 1}},
		{{"a", 3}, {"b", 3}, {"c", 3}, {"d", 3}, {"e", 3}, {"f", 3}, {"g", 3}},
	}

	for _, total := range amounts {
		for _, shares := range weightSets {
			name := fmt.Sprintf("amount=%d/weights=%d", total, len(shares))
			t.Run(name, func(t *testing.T) {
				got, err := Split(total, shares)
				require.NoError(t, err)

				var sum money.Amount
				for _, v := range got {
					assert.GreaterOrEqual(t, v, money.Amount(0))
					sum += v
				}
				assert.Equal(t, total, sum)
			})
		}
	}
}

func TestSplitDeterminism(t *testing.T) {
	shares := []Share{{"a", 3}, {"b", 2}, {"c", 2}, {"d", 1}}
	first, err := Split(10001, shares)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := Split(10001, shares)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEqual(t *testing.T) {
	got, err := Equal(1500, []string{"dave", "eva", "anne"})
	require.NoError(t, err)
	assert.Equal(t, map[string]money.Amount{"dave": 500, "eva": 500, "anne": 500}, got)

	_, err = Equal(1500, nil)
	assert.ErrorIs(t, err, ErrNoParticipants)
}
