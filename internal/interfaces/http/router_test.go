package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/application/sales"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository/repotest"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/excel"
	"github.com/jhoicas/myshop-pos/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/myshop-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/myshop-pos/pkg/jwt"
)

const (
	adminID   = "00000000-0000-0000-0000-0000000000a1"
	managerID = "00000000-0000-0000-0000-0000000000a2"
	cashierID = "00000000-0000-0000-0000-0000000000a3"

	categoryID = "00000000-0000-0000-0000-0000000000c1"
	productID  = "00000000-0000-0000-0000-0000000000d1"
)

type testAPI struct {
	app   *fiber.App
	store *repotest.Store
}

func newTestAPI(t *testing.T, migrateRequireAuth bool) *testAPI {
	t.Helper()
	s := repotest.NewStore()
	s.Users[adminID] = &entity.User{ID: adminID, Username: "admin", FullName: "Admin", Role: entity.RoleAdmin, IsActive: true}
	s.Users[managerID] = &entity.User{ID: managerID, Username: "manager", FullName: "Manager", Role: entity.RoleManager, IsActive: true}
	s.Users[cashierID] = &entity.User{ID: cashierID, Username: "dara", FullName: "Dara", Role: entity.RoleCashier, IsActive: true}

	rate := decimal.NewFromInt(4100)
	deps := apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(s.UserRepo(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:         usecase.NewUserUseCase(s.UserRepo()),
		CategoryUC:     usecase.NewCategoryUseCase(s.CategoryRepo()),
		BrandUC:        usecase.NewBrandUseCase(s.BrandRepo()),
		ProductUC:      usecase.NewProductUseCase(s.ProductRepo(), s.CategoryRepo(), s.BrandRepo(), s.SerialItemRepo()),
		SerialItemUC:   usecase.NewSerialItemUseCase(s.SerialItemRepo(), s.ProductRepo()),
		WarrantyUC:     usecase.NewWarrantyUseCase(s.WarrantyRepo()),
		ExchangeRateUC: usecase.NewExchangeRateUseCase(s.ExchangeRateRepo(), rate),
		SaleUC: sales.NewSaleUseCase(s.TxRunner(), s.SaleRepo(), s.WarrantyRepo(), s.ExchangeRateRepo(), s.UserRepo(),
			pdf.NewReceiptGenerator(),
			sales.Config{DefaultExchangeRate: rate, WarrantyMonths: 12, LargeChangeUSD: decimal.NewFromInt(20), ShopName: "MyShop"}),
		ReportUC:           usecase.NewReportUseCase(s.ReportRepo(), excel.NewPerformanceExporter()),
		MigrationUC:        usecase.NewMigrationUseCase(s.SchemaRepo()),
		MigrateRequireAuth: migrateRequireAuth,
	}
	return &testAPI{app: apphttp.NewApp("myshop-pos-test", deps), store: s}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// call ejecuta la petición y decodifica el envelope.
func (a *testAPI) call(t *testing.T, method, path, authHeader string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func data(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	d, ok := env["data"].(map[string]any)
	require.True(t, ok, "data debe ser un objeto: %v", env)
	return d
}

func TestRouter_RutaProtegidaSinToken_Retorna401(t *testing.T) {
	api := newTestAPI(t, false)

	for _, path := range []string{"/api/products", "/api/sales", "/api/reports/performance", "/api/users"} {
		status, env := api.call(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, false, env["success"], path)
	}
}

func TestRouter_CajeroSinPermiso_Retorna403(t *testing.T) {
	api := newTestAPI(t, false)
	cashier := bearer(t, cashierID, entity.RoleCashier)

	status, env := api.call(t, http.MethodPost, "/api/categories", cashier, map[string]any{"name": "Phones"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env["code"])

	status, _ = api.call(t, http.MethodGet, "/api/reports/daily", cashier, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.call(t, http.MethodGet, "/api/categories", cashier, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_CategoriaDuplicada_NoPersiste(t *testing.T) {
	api := newTestAPI(t, false)
	manager := bearer(t, managerID, entity.RoleManager)

	status, _ := api.call(t, http.MethodPost, "/api/categories", manager, map[string]any{"name": "Phones"})
	require.Equal(t, http.StatusCreated, status)

	status, env := api.call(t, http.MethodPost, "/api/categories", manager, map[string]any{"name": "Phones"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "DUPLICATE", env["code"])
	assert.Len(t, api.store.Categories, 1)
}

func TestRouter_DetallePublicoSinCosto(t *testing.T) {
	api := newTestAPI(t, false)
	api.store.Categories[categoryID] = &entity.Category{ID: categoryID, Name: "Phones", IsActive: true}
	api.store.Products[productID] = &entity.Product{
		ID: productID, CategoryID: categoryID, Name: "iPhone 15", SKU: "APL-15", IsActive: true, Quantity: 3,
		CostPrice: decimal.NewFromInt(700), SellingPrice: decimal.NewFromInt(900), Condition: entity.ConditionNew,
	}

	status, env := api.call(t, http.MethodGet, "/api/public/products/"+productID, "", nil)
	require.Equal(t, http.StatusOK, status)
	d := data(t, env)
	assert.NotContains(t, d, "cost_price")
	assert.Equal(t, "900", d["selling_price"])

	status, env = api.call(t, http.MethodGet, "/api/products/"+productID, bearer(t, adminID, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "700", data(t, env)["cost_price"])

	status, env = api.call(t, http.MethodGet, "/api/products/"+productID, bearer(t, cashierID, entity.RoleCashier), nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, data(t, env), "cost_price")
}

func TestRouter_GarantiaPorIMEIoSerie(t *testing.T) {
	api := newTestAPI(t, false)
	imei, serial := "356789012345678", "SN-ABC-1"
	today := entity.DateOf(time.Now())
	api.store.Products["phone"] = &entity.Product{ID: "phone", Name: "iPhone 15", IsSerialized: true, IsActive: true}
	api.store.Serials["unit"] = &entity.SerialItem{ID: "unit", ProductID: "phone", IMEI: &imei, SerialNumber: &serial, Status: entity.SerialSold}
	api.store.Warranties["w"] = &entity.Warranty{
		ID: "w", SerialItemID: "unit", SaleID: "sale", StartDate: today,
		EndDate: entity.WarrantyEnd(today, 12), DurationMonths: 12, Status: entity.WarrantyActive,
	}

	status, byIMEI := api.call(t, http.MethodGet, "/api/public/warranty/check/"+imei, "", nil)
	require.Equal(t, http.StatusOK, status)
	status, bySerial := api.call(t, http.MethodGet, "/api/public/warranty/check/"+serial, "", nil)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, data(t, byIMEI), data(t, bySerial))
	assert.Equal(t, true, data(t, byIMEI)["isValid"])
	assert.Equal(t, serial, data(t, byIMEI)["serial_number"])

	status, env := api.call(t, http.MethodGet, "/api/public/warranty/check/NOPE", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, env["success"])
}

func TestRouter_TasaDelDiaSeSobrescribe(t *testing.T) {
	api := newTestAPI(t, false)
	admin := bearer(t, adminID, entity.RoleAdmin)

	status, _ := api.call(t, http.MethodPost, "/api/settings/exchange-rate", admin, map[string]any{"usd_to_khr": "4100"})
	require.Equal(t, http.StatusOK, status)
	status, env := api.call(t, http.MethodPost, "/api/settings/exchange-rate", admin, map[string]any{"usd_to_khr": "4150"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "4150", data(t, env)["usd_to_khr"])

	require.Len(t, api.store.Rates, 1)
	for _, r := range api.store.Rates {
		assert.True(t, r.USDToKHR.Equal(decimal.NewFromInt(4150)))
	}

	status, env = api.call(t, http.MethodGet, "/api/settings/exchange-rate/today", bearer(t, cashierID, entity.RoleCashier), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "4150", data(t, env)["usd_to_khr"])
}

func TestRouter_MigracionNombradaIdempotente(t *testing.T) {
	api := newTestAPI(t, false)

	status, env := api.call(t, http.MethodPost, "/api/migrate/notes", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, data(t, env)["applied"])

	status, env = api.call(t, http.MethodPost, "/api/migrate/notes", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, data(t, env)["applied"])

	status, _ = api.call(t, http.MethodPost, "/api/migrate/desconocida", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_MigracionConAuth(t *testing.T) {
	api := newTestAPI(t, true)

	status, _ := api.call(t, http.MethodPost, "/api/migrate/telegram", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = api.call(t, http.MethodPost, "/api/migrate/telegram", bearer(t, managerID, entity.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := api.call(t, http.MethodPost, "/api/migrate/telegram", bearer(t, adminID, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, data(t, env)["applied"])
}

func TestRouter_DesempenoRangoInclusivo(t *testing.T) {
	api := newTestAPI(t, false)
	sale := func(id string, at time.Time, total int64) {
		api.store.Sales[id] = &entity.Sale{
			ID: id, CashierID: cashierID, TotalUSD: decimal.NewFromInt(total),
			PaymentMethod: entity.PaymentCash, Status: entity.SaleCompleted, CreatedAt: at,
		}
	}
	sale("s1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 100)
	sale("s2", time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), 50)
	sale("s3", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 999)

	status, env := api.call(t, http.MethodGet, "/api/reports/performance?start_date=2024-03-01&end_date=2024-03-31",
		bearer(t, managerID, entity.RoleManager), nil)
	require.Equal(t, http.StatusOK, status)

	rows, isList := env["data"].([]any)
	require.True(t, isList, "data debe ser una lista: %v", env)
	assert.Equal(t, "2024-03-01..2024-03-31", env["message"])
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "Dara", row["cashier_name"])
	assert.Equal(t, float64(2), row["total_sales"])
	assert.Equal(t, "150", row["total_revenue"])
}

func TestRouter_HealthYMetrics(t *testing.T) {
	api := newTestAPI(t, false)

	status, env := api.call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", env["status"])

	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_GananciaRangoInclusivo(t *testing.T) {
	api := newTestAPI(t, false)
	sale := func(id string, at time.Time, total, cost int64) {
		api.store.Sales[id] = &entity.Sale{
			ID: id, CashierID: cashierID, TotalUSD: decimal.NewFromInt(total),
			PaymentMethod: entity.PaymentCash, Status: entity.SaleCompleted, CreatedAt: at,
		}
		api.store.SaleItems[id] = []*entity.SaleItem{{ID: id + "-1", SaleID: id, Quantity: 1, CostPrice: decimal.NewFromInt(cost)}}
	}
	sale("s1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 100, 60)
	sale("s2", time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), 100, 40)
	sale("s3", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 999, 1)
	manager := bearer(t, managerID, entity.RoleManager)

	status, env := api.call(t, http.MethodGet, "/api/reports/profit?start_date=2024-03-01&end_date=2024-03-31", manager, nil)
	require.Equal(t, http.StatusOK, status)
	d := data(t, env)
	assert.Equal(t, float64(2), d["sales_count"])
	assert.Equal(t, "200", d["total_revenue"])
	assert.Equal(t, "100", d["total_cost"])
	assert.Equal(t, "100", d["gross_profit"])
	assert.Equal(t, "50", d["profit_margin"])

	status, env = api.call(t, http.MethodGet, "/api/reports/profit?start_date=2024-03-01", manager, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env["code"])

	status, _ = api.call(t, http.MethodGet, "/api/reports/profit", manager, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = api.call(t, http.MethodGet, "/api/reports/profit?start_date=2024-03-01&end_date=2024-03-31",
		bearer(t, cashierID, entity.RoleCashier), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRouter_IDMalFormado_Retorna404(t *testing.T) {
	api := newTestAPI(t, false)
	admin := bearer(t, adminID, entity.RoleAdmin)

	status, env := api.call(t, http.MethodGet, "/api/public/products/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env["code"])

	for _, path := range []string{"/api/products/1", "/api/categories/x", "/api/sales/abc", "/api/sales/abc/receipt"} {
		status, _ = api.call(t, http.MethodGet, path, admin, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
	}
	status, _ = api.call(t, http.MethodPost, "/api/sales/abc/void", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_AnularVenta(t *testing.T) {
	api := newTestAPI(t, false)
	api.store.Categories[categoryID] = &entity.Category{ID: categoryID, Name: "Accessories", IsActive: true}
	api.store.Products[productID] = &entity.Product{
		ID: productID, CategoryID: categoryID, Name: "Case", SKU: "CASE-1", IsActive: true, Quantity: 4,
		CostPrice: decimal.NewFromInt(2), SellingPrice: decimal.NewFromInt(5), Condition: entity.ConditionNew,
	}
	status, env := api.call(t, http.MethodPost, "/api/sales", bearer(t, cashierID, entity.RoleCashier), map[string]any{
		"items":    []map[string]any{{"product_id": productID, "quantity": 3}},
		"paid_usd": "15",
	})
	require.Equal(t, http.StatusCreated, status, env)
	saleID := data(t, env)["id"].(string)
	require.Equal(t, 1, api.store.Products[productID].Quantity)

	status, _ = api.call(t, http.MethodPost, "/api/sales/"+saleID+"/void", bearer(t, managerID, entity.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, status)

	admin := bearer(t, adminID, entity.RoleAdmin)
	status, env = api.call(t, http.MethodPost, "/api/sales/"+saleID+"/void", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Sale voided successfully", env["message"])
	assert.Equal(t, 4, api.store.Products[productID].Quantity)

	status, env = api.call(t, http.MethodPost, "/api/sales/"+saleID+"/void", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Sale is already voided", env["message"])
	assert.Equal(t, 4, api.store.Products[productID].Quantity)

	status, env = api.call(t, http.MethodGet, "/api/sales/"+saleID, admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.SaleVoided, data(t, env)["status"])
}

func TestRouter_UnidadPorIMEIyPatch(t *testing.T) {
	api := newTestAPI(t, false)
	const unitID = "00000000-0000-0000-0000-0000000000e1"
	imei := "356789012345678"
	api.store.Products[productID] = &entity.Product{ID: productID, Name: "iPhone 15", SKU: "APL-15", IsSerialized: true, IsActive: true}
	api.store.Serials[unitID] = &entity.SerialItem{ID: unitID, ProductID: productID, IMEI: &imei, Status: entity.SerialInStock}

	status, env := api.call(t, http.MethodGet, "/api/serial-items/imei/"+imei, bearer(t, cashierID, entity.RoleCashier), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, unitID, data(t, env)["id"])
	assert.Equal(t, "iPhone 15", data(t, env)["product_name"])

	status, _ = api.call(t, http.MethodPatch, "/api/serial-items/"+unitID, bearer(t, cashierID, entity.RoleCashier),
		map[string]any{"status": "defective"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = api.call(t, http.MethodPatch, "/api/serial-items/"+unitID, bearer(t, managerID, entity.RoleManager),
		map[string]any{"status": "defective", "notes": "no enciende"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "defective", data(t, env)["status"])
	assert.Equal(t, entity.SerialDefective, api.store.Serials[unitID].Status)
	assert.Equal(t, "no enciende", api.store.Serials[unitID].Notes)
}
