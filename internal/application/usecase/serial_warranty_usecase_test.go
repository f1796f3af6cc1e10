package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository/repotest"
)

func strPtr(s string) *string { return &s }

const (
	phonesID = "c0a8012e-0000-4a1b-8c2d-000000000001"
	iphoneID = "c0a8012e-0000-4a1b-8c2d-000000000002"
	cableID  = "c0a8012e-0000-4a1b-8c2d-000000000003"
)

func seedSerializedProduct(s *repotest.Store) *entity.Product {
	s.Categories[phonesID] = &entity.Category{ID: phonesID, Name: "Phones", IsActive: true}
	p := &entity.Product{ID: iphoneID, CategoryID: phonesID, Name: "iPhone 15", SKU: "APL-15", IsSerialized: true, IsActive: true, Condition: entity.ConditionNew}
	s.Products[p.ID] = p
	return p
}

func TestSerialItem_IMEIoSerieDuplicado(t *testing.T) {
	s := repotest.NewStore()
	seedSerializedProduct(s)
	uc := usecase.NewSerialItemUseCase(s.SerialItemRepo(), s.ProductRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.SerialItemRequest{ProductID: iphoneID, IMEI: strPtr("123456789012345"), SerialNumber: strPtr("SN-1")})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.SerialItemRequest{ProductID: iphoneID, IMEI: strPtr("123456789012345")})
	assert.EqualError(t, err, "IMEI already exists")

	_, err = uc.Create(ctx, dto.SerialItemRequest{ProductID: iphoneID, SerialNumber: strPtr("SN-1")})
	assert.EqualError(t, err, "Serial number already exists")

	_, err = uc.Create(ctx, dto.SerialItemRequest{ProductID: iphoneID, IMEI: strPtr("1234")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.SerialItemRequest{ProductID: iphoneID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSerialItem_ProductoNoSerializado(t *testing.T) {
	s := repotest.NewStore()
	s.Products[cableID] = &entity.Product{ID: cableID, Name: "Cable", IsActive: true}
	uc := usecase.NewSerialItemUseCase(s.SerialItemRepo(), s.ProductRepo())

	_, err := uc.Create(context.Background(), dto.SerialItemRequest{ProductID: cableID, SerialNumber: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotSerialized)
}

func TestSerialItem_BulkReportaErroresPorPosicion(t *testing.T) {
	s := repotest.NewStore()
	seedSerializedProduct(s)
	uc := usecase.NewSerialItemUseCase(s.SerialItemRepo(), s.ProductRepo())
	ctx := context.Background()

	out, err := uc.BulkCreate(ctx, dto.BulkSerialItemRequest{
		ProductID: iphoneID,
		Items: []dto.BulkSerialItemPayload{
			{IMEI: strPtr("111111111111111")},
			{IMEI: strPtr("111111111111111")},
			{SerialNumber: strPtr("SN-9")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, out.Created, 2)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, 1, out.Errors[0].Index)

	out, err = uc.BulkCreate(ctx, dto.BulkSerialItemRequest{
		ProductID: iphoneID,
		Items:     []dto.BulkSerialItemPayload{{SerialNumber: strPtr("SN-9")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	require.NotNil(t, out)
	assert.Empty(t, out.Created)
	assert.Len(t, out.Errors, 1)
}

func TestSerialItem_UpdateVendidaSoloADevuelta(t *testing.T) {
	s := repotest.NewStore()
	seedSerializedProduct(s)
	uc := usecase.NewSerialItemUseCase(s.SerialItemRepo(), s.ProductRepo())
	ctx := context.Background()
	unitID := "c0a8012e-0000-4a1b-8c2d-0000000000f1"
	saleID := "c0a8012e-0000-4a1b-8c2d-0000000000f2"
	s.Serials[unitID] = &entity.SerialItem{ID: unitID, ProductID: iphoneID, IMEI: strPtr("123456789012345"), Status: entity.SerialSold, SaleID: &saleID}

	_, err := uc.Update(ctx, unitID, dto.UpdateSerialItemRequest{Notes: strPtr("rayado")})
	assert.EqualError(t, err, "Cannot modify sold items")
	_, err = uc.Update(ctx, unitID, dto.UpdateSerialItemRequest{Status: strPtr(entity.SerialInStock)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, unitID, dto.UpdateSerialItemRequest{Status: strPtr(entity.SerialReturned), Notes: strPtr("pantalla")})
	require.NoError(t, err)
	assert.Equal(t, entity.SerialReturned, out.Status)
	assert.Equal(t, entity.SerialReturned, s.Serials[unitID].Status)
	assert.Equal(t, "pantalla", s.Serials[unitID].Notes)

	out, err = uc.Update(ctx, unitID, dto.UpdateSerialItemRequest{Status: strPtr(entity.SerialDefective)})
	require.NoError(t, err)
	assert.Equal(t, entity.SerialDefective, out.Status)

	_, err = uc.Update(ctx, unitID, dto.UpdateSerialItemRequest{Status: strPtr(entity.SerialSold)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "u-1", dto.UpdateSerialItemRequest{Notes: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSerialItem_GetByIMEI(t *testing.T) {
	s := repotest.NewStore()
	seedSerializedProduct(s)
	uc := usecase.NewSerialItemUseCase(s.SerialItemRepo(), s.ProductRepo())
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.SerialItemRequest{ProductID: iphoneID, IMEI: strPtr("356789012345678"), SerialNumber: strPtr("123456789012345")})
	require.NoError(t, err)

	got, err := uc.GetByIMEI(ctx, "356789012345678", false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "iPhone 15", got.ProductName)
	assert.Nil(t, got.CostPrice)

	// Coincide con el número de serie, no con el IMEI.
	_, err = uc.GetByIMEI(ctx, "123456789012345", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByIMEI(ctx, "abc", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarranty_PorIMEIyPorSerieIgual(t *testing.T) {
	s := repotest.NewStore()
	seedSerializedProduct(s)
	s.Serials["u-1"] = &entity.SerialItem{
		ID: "u-1", ProductID: iphoneID, IMEI: strPtr("123456789012345"), SerialNumber: strPtr("F2LXK0QJ"), Status: entity.SerialSold,
	}
	start := time.Now().AddDate(0, -1, 0)
	s.Warranties["w-1"] = &entity.Warranty{
		ID: "w-1", SerialItemID: "u-1", SaleID: "s-1",
		StartDate: entity.DateOf(start), EndDate: entity.WarrantyEnd(start, 12), DurationMonths: 12, Status: entity.WarrantyActive,
	}
	uc := usecase.NewWarrantyUseCase(s.WarrantyRepo())
	ctx := context.Background()

	byIMEI, err := uc.Check(ctx, "123456789012345")
	require.NoError(t, err)
	bySerial, err := uc.Check(ctx, "F2LXK0QJ")
	require.NoError(t, err)

	assert.Equal(t, byIMEI, bySerial)
	assert.Equal(t, "iPhone 15", byIMEI.Product)
	assert.Equal(t, "F2LXK0QJ", byIMEI.SerialNumber)
	assert.True(t, byIMEI.IsValid)

	_, err = uc.Check(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarranty_ExpireOverdue(t *testing.T) {
	s := repotest.NewStore()
	past := time.Now().AddDate(-2, 0, 0)
	s.Warranties["old"] = &entity.Warranty{ID: "old", StartDate: past, EndDate: entity.WarrantyEnd(past, 12), Status: entity.WarrantyActive}
	s.Warranties["new"] = &entity.Warranty{ID: "new", StartDate: time.Now(), EndDate: entity.WarrantyEnd(time.Now(), 12), Status: entity.WarrantyActive}
	uc := usecase.NewWarrantyUseCase(s.WarrantyRepo())

	n, err := uc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, entity.WarrantyExpired, s.Warranties["old"].Status)
	assert.Equal(t, entity.WarrantyActive, s.Warranties["new"].Status)
}
