package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeBreakdown_NoFees проверяет раскладку без дополнительных сборов:
// $200 дает платформенный сбор $10.00, процессинговый $6.10 и $183.90 владельцу
func TestComputeBreakdown_NoFees(t *testing.T) {
	subtotal := decimal.NewFromInt(200)

	b := ComputeBreakdown(subtotal, nil, DefaultFeeRates())

	assert.Equal(t, "200.00", b.BaseSubtotal.StringFixed(2))
	assert.Equal(t, "0.00", b.AdditionalFeesTotal.StringFixed(2))
	assert.Equal(t, "200.00", b.GrossTotal.StringFixed(2))
	assert.Equal(t, "10.00", b.PlatformFee.StringFixed(2))
	assert.Equal(t, "6.10", b.ProcessingFee.StringFixed(2))
	assert.Equal(t, "183.90", b.NetToHost.StringFixed(2))
	assert.Equal(t, "200.00", b.TotalToPayer.StringFixed(2))
}

// TestComputeBreakdown_MixedFees проверяет flat и percentage сборы:
// процент считается от базовой стоимости, не от суммы с другими сборами
func TestComputeBreakdown_MixedFees(t *testing.T) {
	subtotal := decimal.NewFromInt(100)
	fees := []AdditionalFee{
		{Name: "Cleaning", Amount: decimal.NewFromInt(20), Type: FeeTypeFlat},
		{Name: "Service", Amount: decimal.NewFromInt(10), Type: FeeTypePercentage},
	}

	b := ComputeBreakdown(subtotal, fees, DefaultFeeRates())

	assert.Equal(t, "20.00", b.FlatFeesTotal.StringFixed(2))
	assert.Equal(t, "10.00", b.PercentageFeesTotal.StringFixed(2))
	assert.Equal(t, "30.00", b.AdditionalFeesTotal.StringFixed(2))
	assert.Equal(t, "130.00", b.GrossTotal.StringFixed(2))
	assert.Equal(t, "6.50", b.PlatformFee.StringFixed(2))
	assert.Equal(t, "4.07", b.ProcessingFee.StringFixed(2))
	assert.Equal(t, "119.43", b.NetToHost.StringFixed(2))

	// Гость платит ровно gross total, сборы платформы удерживаются из выручки владельца
	assert.Equal(t, b.GrossTotal.StringFixed(2), b.TotalToPayer.StringFixed(2))
}

// TestComputeBreakdown_NegativeNetToHost проверяет, что отрицательный NetToHost
// не обрезается до нуля
func TestComputeBreakdown_NegativeNetToHost(t *testing.T) {
	// Нулевая базовая стоимость: сборы превышают выручку
	b := ComputeBreakdown(decimal.Zero, nil, DefaultFeeRates())

	assert.Equal(t, "0.00", b.GrossTotal.StringFixed(2))
	assert.Equal(t, "-0.30", b.NetToHost.StringFixed(2))
	assert.True(t, b.NetToHost.IsNegative())
}

// TestNewAdditionalFee проверяет валидацию дополнительного сбора
func TestNewAdditionalFee(t *testing.T) {
	tests := []struct {
		name      string
		feeName   string
		amount    decimal.Decimal
		feeType   FeeType
		expectErr bool
	}{
		{name: "валидный flat сбор", feeName: "Cleaning", amount: decimal.NewFromInt(50), feeType: FeeTypeFlat},
		{name: "валидный percentage сбор", feeName: "Service", amount: decimal.NewFromInt(10), feeType: FeeTypePercentage},
		{name: "нулевая сумма допустима", feeName: "Promo", amount: decimal.Zero, feeType: FeeTypeFlat},
		{name: "пустое имя", feeName: "   ", amount: decimal.NewFromInt(10), feeType: FeeTypeFlat, expectErr: true},
		{name: "отрицательная сумма", feeName: "Discount", amount: decimal.NewFromInt(-5), feeType: FeeTypeFlat, expectErr: true},
		{name: "неизвестный тип", feeName: "Mystery", amount: decimal.NewFromInt(5), feeType: FeeType("tiered"), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := NewAdditionalFee(tt.feeName, tt.amount, tt.feeType)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidFee)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.feeType, fee.Type)
		})
	}
}
