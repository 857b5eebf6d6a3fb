package llamma

import (
	"testing"

	"llamalend/pkg/number"

	"github.com/stretchr/testify/assert"
)

func TestFullRepayAmount(t *testing.T) {
	assert.Equal(t, "1000.1", FullRepayAmount(number.Decimal("1000"), 18).String())
	assert.Equal(t, "0.000001", FullRepayAmount(number.Decimal("0.000001"), 6).String())
	assert.Equal(t, "1.0001", FullRepayAmount(number.Decimal("1"), 18).String())
}

func TestActiveBandHint(t *testing.T) {
	assert.Equal(t, "57896044618658097711785492504343953926634992332820282019728792003956564819967", ActiveBandHint(true, 10).String())
	assert.Equal(t, "9", ActiveBandHint(false, 10).String())
	assert.Equal(t, "-101", ActiveBandHint(false, -100).String())

	hint := ActiveBandHint(true, 0)
	hint.SetInt64(1)
	assert.NotEqual(t, "1", MaxActiveBand.String())
}

func TestGasLimit(t *testing.T) {
	assert.Equal(t, uint64(130000), GasLimit(100000))
	assert.Equal(t, uint64(1), GasLimit(1))
	assert.Equal(t, uint64(0), GasLimit(0))
}

func TestFormatHealth(t *testing.T) {
	health := number.ToRaw(number.Decimal("0.0525"), 18)
	assert.Equal(t, "5.25", FormatHealth(health).String())
}
