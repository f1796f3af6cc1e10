package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/repository/repotest"
)

func newCatalog(t *testing.T) (*repotest.Store, *usecase.CategoryUseCase, *usecase.ProductUseCase) {
	t.Helper()
	s := repotest.NewStore()
	cats := usecase.NewCategoryUseCase(s.CategoryRepo())
	prods := usecase.NewProductUseCase(s.ProductRepo(), s.CategoryRepo(), s.BrandRepo(), s.SerialItemRepo())
	return s, cats, prods
}

func TestCategory_NombreDuplicado_NoPersiste(t *testing.T) {
	s, cats, _ := newCatalog(t)
	ctx := context.Background()

	_, err := cats.Create(ctx, dto.CategoryRequest{Name: "Phones"})
	require.NoError(t, err)

	_, err = cats.Create(ctx, dto.CategoryRequest{Name: "Phones"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.EqualError(t, err, "Category name already exists")
	assert.Len(t, s.Categories, 1)
}

func TestCategory_ListaPublicaSoloActivas(t *testing.T) {
	_, cats, _ := newCatalog(t)
	ctx := context.Background()
	inactive := false

	_, err := cats.Create(ctx, dto.CategoryRequest{Name: "Tablets"})
	require.NoError(t, err)
	_, err = cats.Create(ctx, dto.CategoryRequest{Name: "Accessories", IsActive: &inactive})
	require.NoError(t, err)

	all, err := cats.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Accessories", all[0].Name, "orden por nombre ascendente")

	public, err := cats.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Tablets", public[0].Name)
}

func TestCategory_ConProductosNoSeBorra(t *testing.T) {
	_, cats, prods := newCatalog(t)
	ctx := context.Background()

	c, err := cats.Create(ctx, dto.CategoryRequest{Name: "Phones"})
	require.NoError(t, err)
	_, err = prods.Create(ctx, dto.CreateProductRequest{CategoryID: c.ID, Name: "Galaxy A15", SKU: "SAM-A15"})
	require.NoError(t, err)

	assert.ErrorIs(t, cats.Delete(ctx, c.ID), domain.ErrCategoryInUse)
}

func TestProduct_CreateValidaYSerializadoSinCantidad(t *testing.T) {
	_, cats, prods := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, dto.CategoryRequest{Name: "Phones"})
	require.NoError(t, err)

	_, err = prods.Create(ctx, dto.CreateProductRequest{Name: "X", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := prods.Create(ctx, dto.CreateProductRequest{
		CategoryID: c.ID, Name: "iPhone 15", SKU: "APL-15", IsSerialized: true, Quantity: 7,
		SellingPrice: decimal.NewFromInt(999),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, "serialized", p.StockStatus)

	_, err = prods.Create(ctx, dto.CreateProductRequest{CategoryID: c.ID, Name: "Otro", SKU: "APL-15"})
	assert.EqualError(t, err, "SKU already exists")
}

func TestProduct_CostoSoloConPermiso(t *testing.T) {
	_, cats, prods := newCatalog(t)
	ctx := context.Background()
	c, err := cats.Create(ctx, dto.CategoryRequest{Name: "Phones"})
	require.NoError(t, err)
	p, err := prods.Create(ctx, dto.CreateProductRequest{
		CategoryID: c.ID, Name: "Redmi 13", SKU: "XIA-13", Quantity: 3,
		CostPrice: decimal.NewFromInt(120), SellingPrice: decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	withCost, err := prods.GetDetail(ctx, p.ID, true, false)
	require.NoError(t, err)
	require.NotNil(t, withCost.CostPrice)
	assert.True(t, withCost.CostPrice.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, withCost.Category)

	noCost, err := prods.GetDetail(ctx, p.ID, false, true)
	require.NoError(t, err)
	assert.Nil(t, noCost.CostPrice)

	list, err := prods.List(ctx, dto.ProductListQuery{}, false, true)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Nil(t, list.Items[0].CostPrice)
}

func TestProduct_DeleteEsLogico(t *testing.T) {
	s, cats, prods := newCatalog(t)
	ctx := context.Background()
	c, _ := cats.Create(ctx, dto.CategoryRequest{Name: "Phones"})
	p, err := prods.Create(ctx, dto.CreateProductRequest{CategoryID: c.ID, Name: "Nokia", SKU: "NOK-1"})
	require.NoError(t, err)

	require.NoError(t, prods.Delete(ctx, p.ID))
	assert.False(t, s.Products[p.ID].IsActive)

	_, err = prods.GetDetail(ctx, p.ID, false, true)
	assert.ErrorIs(t, err, domain.ErrNotFound, "inactivo no se ve en la ruta pública")

	_, err = prods.GetDetail(ctx, p.ID, true, false)
	assert.NoError(t, err)
}

func TestProduct_FiltroSerializadoInvalido(t *testing.T) {
	_, _, prods := newCatalog(t)
	_, err := prods.List(context.Background(), dto.ProductListQuery{IsSerialized: "quizás"}, true, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBrand_Duplicada(t *testing.T) {
	s := repotest.NewStore()
	brands := usecase.NewBrandUseCase(s.BrandRepo())
	ctx := context.Background()

	_, err := brands.Create(ctx, dto.BrandRequest{Name: "Apple"})
	require.NoError(t, err)
	_, err = brands.Create(ctx, dto.BrandRequest{Name: "Apple"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
