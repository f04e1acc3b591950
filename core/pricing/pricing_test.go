package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) *Money {
	m := MustParse(s)
	return &m
}

func TestEffectiveUnitPrice(t *testing.T) {
	tests := []struct {
		name      string
		price     Money
		promotion *Money
		want      Money
	}{
		{"no promotion", MustParse("10.00"), nil, MustParse("10.00")},
		{"zero promotion", MustParse("10.00"), money("0.00"), MustParse("10.00")},
		{"promotion", MustParse("10.00"), money("7.50"), MustParse("7.50")},
		{"promotion above price", MustParse("10.00"), money("12.00"), MustParse("12.00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveUnitPrice(tt.price, tt.promotion)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestLinePrice(t *testing.T) {
	assert.Equal(t, "30.00", LinePrice(MustParse("10"), 3).String())
	assert.Equal(t, "0.30", LinePrice(MustParse("0.10"), 3).String())
	assert.Equal(t, "59.97", LinePrice(MustParse("19.99"), 3).String())
}

func TestSumIsStable(t *testing.T) {
	amounts := []Money{MustParse("30.00"), MustParse("20.00"), MustParse("0.01")}

	first := Sum(amounts...)
	second := Sum(amounts...)

	assert.Equal(t, "50.01", first.String())
	assert.True(t, first.Equal(second))
	assert.Equal(t, "0.00", Sum().String())
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{MustParse("30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"30.00"}`, string(b))

	var in struct {
		Price Money `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.340"}`), &in))
	assert.Equal(t, "12.34", in.Price.String())

	err = json.Unmarshal([]byte(`{"price":12.345}`), &in)
	assert.ErrorIs(t, err, ErrPrecision)
}

func TestMoneyFits(t *testing.T) {
	assert.True(t, Max.Fits())
	assert.True(t, MustParse("-99999999.99").Fits())
	assert.False(t, Max.Plus(MustParse("0.01")).Fits())
	assert.False(t, LinePrice(MustParse("50000000.00"), 2).Fits())
}
