package sales_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/sales"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository/repotest"
)

type fakeRenderer struct{ shop string }

func (f *fakeRenderer) RenderReceipt(shopName string, sale *dto.SaleResponse) ([]byte, error) {
	f.shop = shopName
	return []byte("%PDF-" + sale.InvoiceNumber), nil
}

func strPtr(s string) *string { return &s }

const (
	cashier1 = "7d0c5a3e-1f2b-4c6d-8e9f-0a1b2c3d4e01"
	cashier2 = "7d0c5a3e-1f2b-4c6d-8e9f-0a1b2c3d4e02"
	adminID  = "7d0c5a3e-1f2b-4c6d-8e9f-0a1b2c3d4e03"
	phoneID  = "9b1f6e2a-3c4d-4e5f-8a6b-7c8d9e0f1a01"
	caseID   = "9b1f6e2a-3c4d-4e5f-8a6b-7c8d9e0f1a02"
	unitID   = "5e2d8c4b-6a7f-4b8c-9d0e-1f2a3b4c5d01"
)

func setup(t *testing.T) (*repotest.Store, *sales.SaleUseCase) {
	t.Helper()
	s := repotest.NewStore()
	s.Users[cashier1] = &entity.User{ID: cashier1, FullName: "Dara", Role: entity.RoleCashier, IsActive: true}
	s.Users[cashier2] = &entity.User{ID: cashier2, FullName: "Sokha", Role: entity.RoleCashier, IsActive: true}
	s.Users[adminID] = &entity.User{ID: adminID, FullName: "Vanna", Role: entity.RoleAdmin, IsActive: true}
	s.Products[phoneID] = &entity.Product{
		ID: phoneID, Name: "iPhone 15", SKU: "APL-15", IsSerialized: true, IsActive: true,
		CostPrice: decimal.NewFromInt(700), SellingPrice: decimal.NewFromInt(900),
	}
	s.Products[caseID] = &entity.Product{
		ID: caseID, Name: "Case", SKU: "CASE-1", IsActive: true, Quantity: 5, LowStockThreshold: 2,
		CostPrice: decimal.NewFromInt(2), SellingPrice: decimal.RequireFromString("5.25"),
	}
	s.Serials[unitID] = &entity.SerialItem{
		ID: unitID, ProductID: phoneID, IMEI: strPtr("123456789012345"), Status: entity.SerialInStock,
	}
	uc := sales.NewSaleUseCase(
		s.TxRunner(), s.SaleRepo(), s.WarrantyRepo(), s.ExchangeRateRepo(), s.UserRepo(),
		&fakeRenderer{},
		sales.Config{
			DefaultExchangeRate: decimal.NewFromInt(4100),
			WarrantyMonths:      12,
			LargeChangeUSD:      decimal.NewFromInt(20),
			ShopName:            "MyShop",
		},
	)
	return s, uc
}

func TestCreate_VentaCompleta(t *testing.T) {
	s, uc := setup(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, cashier1, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: phoneID, SerialItemID: strPtr(unitID)},
			{ProductID: caseID, Quantity: 2},
		},
		PaidUSD: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	// 900 + 2*5.25 = 910.50; vuelto 89.50 -> 89 USD + 0.50*4100 KHR
	assert.True(t, out.TotalUSD.Equal(decimal.RequireFromString("910.5")))
	assert.Equal(t, "89", out.ChangeUSD.String())
	assert.Equal(t, "2050", out.ChangeKHR.String())
	assert.True(t, strings.HasPrefix(out.InvoiceNumber, "INV-"+time.Now().Format("20060102")+"-0001"))

	assert.Equal(t, entity.SerialSold, s.Serials[unitID].Status)
	assert.Equal(t, out.ID, *s.Serials[unitID].SaleID)
	assert.Equal(t, 3, s.Products[caseID].Quantity)
	require.Len(t, out.Warranties, 1)
	assert.Equal(t, 12, out.Warranties[0].DurationMonths)
	assert.Equal(t, entity.DateOf(time.Now()).AddDate(1, 0, 0).Format("2006-01-02"), out.Warranties[0].EndDate)
	require.Len(t, s.SaleItems[out.ID], 2)
	assert.True(t, s.SaleItems[out.ID][0].CostPrice.Equal(decimal.NewFromInt(700)))
}

func TestCreate_UsaTasaDelDia(t *testing.T) {
	s, uc := setup(t)
	today := entity.DateOf(time.Now())
	s.Rates[today.Format("2006-01-02")] = &entity.ExchangeRate{ID: "r", RateDate: today, USDToKHR: decimal.NewFromInt(4000)}

	out, err := uc.Create(context.Background(), cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: caseID, Quantity: 1}},
		PaidKHR: decimal.NewFromInt(21000),
	})
	require.NoError(t, err)
	assert.True(t, out.ExchangeRate.Equal(decimal.NewFromInt(4000)))
	assert.True(t, out.Payment.IsExact)
}

func TestCreate_PagoInsuficiente(t *testing.T) {
	s, uc := setup(t)

	_, err := uc.Create(context.Background(), cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: caseID, Quantity: 1}},
		PaidUSD: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPay)
	assert.Empty(t, s.Sales)
	assert.Equal(t, 5, s.Products[caseID].Quantity)
}

func TestCreate_StockInsuficiente(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Create(context.Background(), cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: caseID, Quantity: 6}},
		PaidUSD: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreate_UnidadYaVendida(t *testing.T) {
	s, uc := setup(t)
	s.Serials[unitID].Status = entity.SerialSold

	_, err := uc.Create(context.Background(), cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: phoneID, SerialItemID: strPtr(unitID)}},
		PaidUSD: decimal.NewFromInt(900),
	})
	assert.ErrorIs(t, err, domain.ErrUnitUnavailable)
}

func TestCreate_SerializadoSinUnidad(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Create(context.Background(), cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: phoneID, Quantity: 1}},
		PaidUSD: decimal.NewFromInt(900),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_TarjetaCobraTotal(t *testing.T) {
	_, uc := setup(t)
	out, err := uc.Create(context.Background(), cashier1, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: caseID, Quantity: 1}},
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)
	assert.True(t, out.PaidUSD.Equal(out.TotalUSD))
}

func TestList_CajeroSoloVeLasPropias(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	for _, cashier := range []string{cashier1, cashier2} {
		_, err := uc.Create(ctx, cashier, dto.CreateSaleRequest{
			Items:   []dto.SaleItemRequest{{ProductID: caseID, Quantity: 1}},
			PaidUSD: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	mine, page, err := uc.List(ctx, cashier1, entity.RoleCashier, dto.SaleListQuery{CashierID: cashier2})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, cashier1, mine[0].CashierID)
	assert.Equal(t, 1, page.Total)

	all, _, err := uc.List(ctx, "mgr", entity.RoleManager, dto.SaleListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGet_CajeroNoVeCostoNiVentasAjenas(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	sale, err := uc.Create(ctx, cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: caseID, Quantity: 1}},
		PaidUSD: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, cashier1, entity.RoleCashier, sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].CostPrice)
	assert.Equal(t, "Dara", got.CashierName)

	_, err = uc.Get(ctx, cashier2, entity.RoleCashier, sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err = uc.Get(ctx, "admin", entity.RoleAdmin, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Items[0].CostPrice)
}

func TestReceipt_GeneraPDF(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	sale, err := uc.Create(ctx, cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: caseID, Quantity: 1}},
		PaidUSD: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	pdf, name, err := uc.Receipt(ctx, cashier1, entity.RoleCashier, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.InvoiceNumber+".pdf", name)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
}

func TestVoid_ReponeStockYLiberaUnidad(t *testing.T) {
	s, uc := setup(t)
	ctx := context.Background()
	sale, err := uc.Create(ctx, cashier1, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: phoneID, SerialItemID: strPtr(unitID)},
			{ProductID: caseID, Quantity: 2},
		},
		PaidUSD: decimal.NewFromInt(1000),
		Notes:   "cliente frecuente",
	})
	require.NoError(t, err)
	require.Equal(t, 3, s.Products[caseID].Quantity)

	require.NoError(t, uc.Void(ctx, adminID, sale.ID))

	assert.Equal(t, 5, s.Products[caseID].Quantity)
	unit := s.Serials[unitID]
	assert.Equal(t, entity.SerialInStock, unit.Status)
	assert.Nil(t, unit.SaleID)
	assert.Nil(t, unit.SoldAt)
	for _, w := range s.Warranties {
		assert.Equal(t, entity.WarrantyVoided, w.Status)
	}
	got := s.Sales[sale.ID]
	assert.Equal(t, entity.SaleVoided, got.Status)
	assert.True(t, strings.HasPrefix(got.Notes, "cliente frecuente\n[VOIDED by Vanna on "))

	// La unidad vuelve a venderse.
	_, err = uc.Create(ctx, cashier2, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: phoneID, SerialItemID: strPtr(unitID)}},
		PaidUSD: decimal.NewFromInt(900),
	})
	require.NoError(t, err)
}

func TestVoid_DobleAnulacionNoRepone(t *testing.T) {
	s, uc := setup(t)
	ctx := context.Background()
	sale, err := uc.Create(ctx, cashier1, dto.CreateSaleRequest{
		Items:   []dto.SaleItemRequest{{ProductID: caseID, Quantity: 1}},
		PaidUSD: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Void(ctx, adminID, sale.ID))
	err = uc.Void(ctx, adminID, sale.ID)
	assert.ErrorIs(t, err, domain.ErrSaleVoided)
	assert.Equal(t, 5, s.Products[caseID].Quantity)
}

func TestVoid_VentaInexistente(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	assert.ErrorIs(t, uc.Void(ctx, adminID, "7d0c5a3e-0000-4c6d-8e9f-0a1b2c3d4eff"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Void(ctx, adminID, "no-es-uuid"), domain.ErrNotFound)
}

func TestGet_IDMalFormadoEsNoEncontrado(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Get(context.Background(), adminID, entity.RoleAdmin, "123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
