package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "whole amount", input: "120", want: 12000},
		{name: "two decimals", input: "33.34", want: 3334},
		{name: "one decimal", input: "0.1", want: 10},
		{name: "negative", input: "-48.00", want: -4800},
		{name: "sub-cent rounds", input: "10.005", want: 1001},
		{name: "zero", input: "0", want: 0},
		{name: "garbage", input: "12,00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, Amount(12000), FromFloat(120.0))
	assert.Equal(t, Amount(3333), FromFloat(33.333))
	assert.Equal(t, Amount(3334), FromFloat(33.335))
	assert.Equal(t, Amount(-2100), FromFloat(-21.0))
	// Classic binary float trap: 0.1+0.2 must still land on 30 cents.
	assert.Equal(t, Amount(30), FromFloat(0.1+0.2))
}

func TestString(t *testing.T) {
	assert.Equal(t, "32.00", Amount(3200).String())
	assert.Equal(t, "-48.50", Amount(-4850).String())
	assert.Equal(t, "0.07", Amount(7).String())
	assert.Equal(t, "0.00", Amount(0).String())
}

func TestAbs(t *testing.T) {
	assert.Equal(t, Amount(2100), Amount(-2100).Abs())
	assert.Equal(t, Amount(2100), Amount(2100).Abs())
}
