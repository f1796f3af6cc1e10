package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
)

func TestRenderReceipt_GeneraPDF(t *testing.T) {
	imei := "356789012345678"
	sale := &dto.SaleResponse{
		InvoiceNumber: "INV-20260115-0001",
		CashierName:   "Dara",
		SubtotalUSD:   decimal.NewFromInt(1010),
		TotalUSD:      decimal.NewFromInt(1010),
		PaidUSD:       decimal.NewFromInt(1020),
		ChangeUSD:     decimal.NewFromInt(10),
		ChangeKHR:     decimal.NewFromInt(41000),
		ExchangeRate:  decimal.NewFromInt(4100),
		PaymentMethod: "cash",
		CreatedAt:     time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		Items: []dto.SaleItemResponse{
			{ProductName: "iPhone 15", Quantity: 1, UnitPrice: decimal.NewFromInt(1000), Total: decimal.NewFromInt(1000), IMEI: &imei},
			{ProductName: "Case", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Total: decimal.NewFromInt(10)},
		},
		Warranties: []dto.WarrantyResponse{{EndDate: "2027-01-15", DurationMonths: 12, Status: "active"}},
	}

	out, err := NewReceiptGenerator().RenderReceipt("MyShop", sale)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderReceipt_VentaNil(t *testing.T) {
	_, err := NewReceiptGenerator().RenderReceipt("MyShop", nil)
	assert.Error(t, err)
}

func TestFormatoMontos(t *testing.T) {
	assert.Equal(t, "$1,234.50", usd(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "41,000 KHR", khr(decimal.NewFromInt(41000)))
}
