package generic_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// MONEY
// =============================================================================

func TestMoney_Round2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.13", generic.MustMoney("0.125").Round2().String())
	assert.Equal(t, "-0.13", generic.MustMoney("-0.125").Round2().String())
	assert.Equal(t, "833.33", generic.MustMoney("10000").DivInt(12).Round2().String())
	assert.Equal(t, "2.68", generic.MustMoney("2.675").Round2().String())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := generic.MustMoney("10000")
	b := generic.MustMoney("1000")

	assert.Equal(t, "9000.00", a.Sub(b).String())
	assert.Equal(t, "11000.00", a.Add(b).String())
	assert.Equal(t, "3000.00", b.MulInt(3).String())
	assert.True(t, b.Sub(a).IsNegative())
	assert.Equal(t, "1000.00", a.Min(b).String())
	assert.Equal(t, "10000.00", a.Max(b).String())
	assert.Equal(t, "10000.00", generic.MustMoney("12000").Clamp(generic.ZeroMoney, a).String())
	assert.Equal(t, "0.00", generic.MustMoney("-5").Clamp(generic.ZeroMoney, a).String())
}

func TestMoney_JSON(t *testing.T) {
	var v struct {
		Number generic.Money `json:"number"`
		Text   generic.Money `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"number": 1234.5, "text": "0.10"}`), &v))
	assert.Equal(t, "1234.50", v.Number.String())
	assert.Equal(t, "0.10", v.Text.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"number": 1234.50, "text": 0.10}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"number": "ten"}`), &v))
}

func TestSumMoney(t *testing.T) {
	sum := generic.SumMoney([]generic.Money{
		generic.MustMoney("0.10"), generic.MustMoney("0.20"), generic.MustMoney("0.30"),
	})
	assert.Equal(t, "0.60", sum.String())
	assert.Equal(t, "0.00", generic.SumMoney(nil).String())
}

// =============================================================================
// ERRORS
// =============================================================================

func TestValidationError_WrapsInvalidAsset(t *testing.T) {
	err := fmt.Errorf("parse: %w", &generic.ValidationError{Asset: "#1 (Van)", Field: "cost", Message: "must be >= 0"})

	assert.True(t, errors.Is(err, generic.ErrInvalidAsset))
	var verr *generic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cost", verr.Field)
	assert.Contains(t, err.Error(), "asset #1 (Van): invalid cost")
}
