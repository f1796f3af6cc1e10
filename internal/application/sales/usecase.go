package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/usecase"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/pos"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// Config reglas de cobro y garantía.
type Config struct {
	DefaultExchangeRate decimal.Decimal
	WarrantyMonths      int
	LargeChangeUSD      decimal.Decimal
	ShopName            string
}

// SaleUseCase registro y consulta de ventas.
type SaleUseCase struct {
	tx           TxRunner
	saleRepo     repository.SaleRepository
	warrantyRepo repository.WarrantyRepository
	rateRepo     repository.ExchangeRateRepository
	userRepo     repository.UserRepository
	renderer     ReceiptRenderer
	cfg          Config
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso inyectando todas sus dependencias.
func NewSaleUseCase(
	tx TxRunner,
	saleRepo repository.SaleRepository,
	warrantyRepo repository.WarrantyRepository,
	rateRepo repository.ExchangeRateRepository,
	userRepo repository.UserRepository,
	renderer ReceiptRenderer,
	cfg Config,
) *SaleUseCase {
	if cfg.WarrantyMonths <= 0 {
		cfg.WarrantyMonths = 12
	}
	return &SaleUseCase{
		tx:           tx,
		saleRepo:     saleRepo,
		warrantyRepo: warrantyRepo,
		rateRepo:     rateRepo,
		userRepo:     userRepo,
		renderer:     renderer,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Create registra la venta en una sola transacción:
//  1. Valida productos, unidades y stock.
//  2. Calcula totales y cobro en USD/KHR con la tasa del día.
//  3. Persiste venta y líneas, marca unidades vendidas, emite garantías y descuenta stock.
func (uc *SaleUseCase) Create(ctx context.Context, cashierID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("Sale must have at least one item")
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}
	if !entity.IsValidPaymentMethod(method) {
		return nil, domain.Invalid("payment_method must be cash, card, khqr or split")
	}
	if in.DiscountUSD.IsNegative() || in.PaidUSD.IsNegative() || in.PaidKHR.IsNegative() {
		return nil, domain.Invalid("amounts cannot be negative")
	}

	now := uc.now()
	rate, err := usecase.TodayRate(ctx, uc.rateRepo, now, uc.cfg.DefaultExchangeRate)
	if err != nil {
		return nil, fmt.Errorf("sale: tasa del día: %w", err)
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CashierID:     cashierID,
		CustomerID:    in.CustomerID,
		DiscountUSD:   in.DiscountUSD,
		ExchangeRate:  rate,
		PaymentMethod: method,
		KHQRReference: strings.TrimSpace(in.KHQRReference),
		Status:        entity.SaleCompleted,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var (
		lines      []*entity.SaleItem
		rows       []dto.SaleItemResponse
		warranties []dto.WarrantyResponse
		payment    pos.PaymentResult
	)

	err = uc.tx.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		serialRepo repository.SerialItemRepository,
		saleRepo repository.SaleRepository,
		warrantyRepo repository.WarrantyRepository,
	) error {
		// ── 1. Líneas ─────────────────────────────────────────────────────────
		subtotal := decimal.Zero
		seen := make(map[string]bool)
		for i, req := range in.Items {
			if usecase.CheckID(req.ProductID) != nil {
				return domain.Invalid(fmt.Sprintf("item %d: product not found", i+1))
			}
			product, err := productRepo.GetByID(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return domain.Invalid(fmt.Sprintf("item %d: product not found", i+1))
			}
			qty := req.Quantity
			var unit *entity.SerialItem
			if product.IsSerialized {
				if req.SerialItemID == nil || *req.SerialItemID == "" {
					return domain.Invalid(fmt.Sprintf("item %d: serial_item_id is required for %s", i+1, product.Name))
				}
				if seen[*req.SerialItemID] {
					return domain.Invalid(fmt.Sprintf("item %d: serial item repeated in sale", i+1))
				}
				seen[*req.SerialItemID] = true
				if usecase.CheckID(*req.SerialItemID) != nil {
					return domain.Invalid(fmt.Sprintf("item %d: serial item not found for %s", i+1, product.Name))
				}
				unit, err = serialRepo.GetByID(ctx, *req.SerialItemID)
				if err != nil {
					return err
				}
				if unit == nil || unit.ProductID != product.ID {
					return domain.Invalid(fmt.Sprintf("item %d: serial item not found for %s", i+1, product.Name))
				}
				if unit.Status != entity.SerialInStock {
					return fmt.Errorf("%w: %s (%s)", domain.ErrUnitUnavailable, unit.Identifier(), unit.Status)
				}
				qty = 1
			} else {
				if qty < 1 {
					return domain.Invalid(fmt.Sprintf("item %d: quantity must be at least 1", i+1))
				}
				if product.Quantity < qty {
					return fmt.Errorf("%w: %s (available %d)", domain.ErrInsufficientStock, product.Name, product.Quantity)
				}
			}

			price := product.SellingPrice
			if req.UnitPrice != nil {
				price = *req.UnitPrice
			}
			gross := price.Mul(decimal.NewFromInt(int64(qty)))
			if price.IsNegative() || req.Discount.IsNegative() || req.Discount.GreaterThan(gross) {
				return domain.Invalid(fmt.Sprintf("item %d: invalid price or discount", i+1))
			}
			cost := product.CostPrice
			if unit != nil && unit.CostPrice.Valid {
				cost = unit.CostPrice.Decimal
			}
			line := &entity.SaleItem{
				ID:           uuid.New().String(),
				SaleID:       sale.ID,
				ProductID:    product.ID,
				SerialItemID: req.SerialItemID,
				Quantity:     qty,
				UnitPrice:    price,
				CostPrice:    cost,
				Discount:     req.Discount,
				Total:        gross.Sub(req.Discount),
				CreatedAt:    now,
			}
			if unit == nil {
				line.SerialItemID = nil
			}
			subtotal = subtotal.Add(line.Total)
			lines = append(lines, line)

			row := dto.SaleItemResponse{
				ID:           line.ID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				SKU:          product.SKU,
				SerialItemID: line.SerialItemID,
				Quantity:     qty,
				UnitPrice:    price,
				Discount:     line.Discount,
				Total:        line.Total,
			}
			if unit != nil {
				row.IMEI, row.SerialNumber = unit.IMEI, unit.SerialNumber
			}
			rows = append(rows, row)
		}

		// ── 2. Totales y cobro ────────────────────────────────────────────────
		total := subtotal.Sub(in.DiscountUSD)
		if total.IsNegative() {
			return domain.Invalid("discount exceeds subtotal")
		}
		paidUSD := in.PaidUSD
		if (method == entity.PaymentCard || method == entity.PaymentKHQR) && paidUSD.IsZero() && in.PaidKHR.IsZero() {
			paidUSD = total
		}
		payment = pos.CalculatePayment(pos.PaymentInput{
			TotalUSD:       total,
			PaidUSD:        paidUSD,
			PaidKHR:        in.PaidKHR,
			ExchangeRate:   rate,
			LargeChangeUSD: uc.cfg.LargeChangeUSD,
		})
		if !payment.IsPaid {
			return fmt.Errorf("%w: remaining %s USD (%s KHR)", domain.ErrInsufficientPay,
				payment.RemainingUSD.StringFixed(2), payment.RemainingKHR.String())
		}
		sale.SubtotalUSD = subtotal
		sale.TotalUSD = total
		sale.PaidUSD = paidUSD
		sale.PaidKHR = in.PaidKHR
		sale.ChangeUSD = payment.ChangeUSD
		sale.ChangeKHR = payment.ChangeKHR

		// ── 3. Persistencia ───────────────────────────────────────────────────
		seq, err := saleRepo.NextInvoiceSequence(ctx, now)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = pos.InvoiceNumber(now, seq)
		if err := saleRepo.Create(ctx, sale, lines); err != nil {
			return err
		}
		for _, line := range lines {
			if line.SerialItemID == nil {
				if err := productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
					return err
				}
				continue
			}
			if err := serialRepo.MarkSold(ctx, *line.SerialItemID, sale.ID, now); err != nil {
				return err
			}
			w := &entity.Warranty{
				ID:             uuid.New().String(),
				SerialItemID:   *line.SerialItemID,
				SaleID:         sale.ID,
				StartDate:      entity.DateOf(now),
				EndDate:        entity.WarrantyEnd(now, uc.cfg.WarrantyMonths),
				DurationMonths: uc.cfg.WarrantyMonths,
				Terms:          entity.DefaultWarrantyTerms,
				Status:         entity.WarrantyActive,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := warrantyRepo.Create(ctx, w); err != nil {
				return err
			}
			warranties = append(warranties, toWarrantyResponse(w))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toSaleResponse(sale, "")
	out.Items = rows
	out.Warranties = warranties
	out.Payment = &dto.PaymentSummary{
		TotalUSD:     payment.TotalUSD,
		TotalPaidUSD: payment.TotalPaidUSD,
		ChangeUSD:    payment.ChangeUSD,
		ChangeKHR:    payment.ChangeKHR,
		ExchangeRate: payment.ExchangeRate,
		IsExact:      payment.IsExact,
	}
	return out, nil
}

// List lista ventas. Los cajeros solo ven las propias.
func (uc *SaleUseCase) List(ctx context.Context, actorID, role string, q dto.SaleListQuery) ([]dto.SaleResponse, *dto.PageResponse, error) {
	q.Normalize()
	r, err := pos.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, nil, domain.Invalid(err.Error())
	}
	f := repository.SaleFilter{
		CashierID:     q.CashierID,
		PaymentMethod: q.PaymentMethod,
		Limit:         q.Limit,
		Offset:        q.Offset(),
	}
	if role == entity.RoleCashier {
		f.CashierID = actorID
	}
	if r != nil {
		f.From, f.To = &r.Start, &r.End
	}
	list, total, err := uc.saleRepo.List(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, row := range list {
		s := toSaleResponse(&row.Sale, row.CashierName)
		s.ItemCount = row.ItemCount
		out = append(out, *s)
	}
	return out, dto.NewPageResponse(q.PageRequest, total), nil
}

// Get devuelve la venta con líneas y garantías. El costo se oculta a los cajeros.
func (uc *SaleUseCase) Get(ctx context.Context, actorID, role, id string) (*dto.SaleResponse, error) {
	if err := usecase.CheckID(id); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if role == entity.RoleCashier && sale.CashierID != actorID {
		return nil, domain.ErrForbidden
	}
	cashierName := ""
	if u, err := uc.userRepo.GetByID(ctx, sale.CashierID); err != nil {
		return nil, err
	} else if u != nil {
		cashierName = u.FullName
	}
	out := toSaleResponse(sale, cashierName)

	items, err := uc.saleRepo.ListItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	showCost := usecase.CanSeeCost(role)
	for _, it := range items {
		row := dto.SaleItemResponse{
			ID:           it.Item.ID,
			ProductID:    it.Item.ProductID,
			ProductName:  it.ProductName,
			SKU:          it.SKU,
			SerialItemID: it.Item.SerialItemID,
			IMEI:         it.IMEI,
			SerialNumber: it.SerialNumber,
			Quantity:     it.Item.Quantity,
			UnitPrice:    it.Item.UnitPrice,
			Discount:     it.Item.Discount,
			Total:        it.Item.Total,
		}
		if showCost {
			cost := it.Item.CostPrice
			row.CostPrice = &cost
		}
		out.Items = append(out.Items, row)
	}
	ws, err := uc.warrantyRepo.ListBySale(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	for _, w := range ws {
		out.Warranties = append(out.Warranties, toWarrantyResponse(w))
	}
	return out, nil
}

// Receipt genera el comprobante PDF de la venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, actorID, role, id string) ([]byte, string, error) {
	sale, err := uc.Get(ctx, actorID, role, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.RenderReceipt(uc.cfg.ShopName, sale)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: %w", err)
	}
	return pdf, sale.InvoiceNumber + ".pdf", nil
}

// SetInternalNotes guarda notas internas de la venta (requiere la migración "notes").
func (uc *SaleUseCase) SetInternalNotes(ctx context.Context, id, notes string) error {
	if err := usecase.CheckID(id); err != nil {
		return err
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.SetInternalNotes(ctx, id, strings.TrimSpace(notes))
}

// Void anula una venta completed en una sola transacción: repone stock de las líneas sin unidad,
// devuelve las unidades a in_stock, anula sus garantías y deja constancia en las notas.
func (uc *SaleUseCase) Void(ctx context.Context, actorID, id string) error {
	if err := usecase.CheckID(id); err != nil {
		return err
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status != entity.SaleCompleted {
		return domain.ErrSaleVoided
	}
	actorName := actorID
	if u, err := uc.userRepo.GetByID(ctx, actorID); err != nil {
		return err
	} else if u != nil {
		actorName = u.FullName
	}
	notes := fmt.Sprintf("%s\n[VOIDED by %s on %s]", sale.Notes, actorName, uc.now().UTC().Format(time.RFC3339))

	return uc.tx.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		serialRepo repository.SerialItemRepository,
		saleRepo repository.SaleRepository,
		warrantyRepo repository.WarrantyRepository,
	) error {
		// Primero el estado: una segunda anulación concurrente falla aquí.
		if err := saleRepo.MarkVoided(ctx, sale.ID, notes); err != nil {
			return err
		}
		items, err := saleRepo.ListItems(ctx, sale.ID)
		if err != nil {
			return err
		}
		for _, row := range items {
			it := row.Item
			if it.SerialItemID == nil {
				if err := productRepo.IncrementStock(ctx, it.ProductID, it.Quantity); err != nil {
					return err
				}
				continue
			}
			if err := serialRepo.MarkInStock(ctx, *it.SerialItemID, sale.ID); err != nil {
				return fmt.Errorf("%w: %s", err, row.SKU)
			}
			if _, err := warrantyRepo.VoidBySale(ctx, *it.SerialItemID, sale.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func toSaleResponse(s *entity.Sale, cashierName string) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		CashierID:     s.CashierID,
		CashierName:   cashierName,
		CustomerID:    s.CustomerID,
		SubtotalUSD:   s.SubtotalUSD,
		DiscountUSD:   s.DiscountUSD,
		TotalUSD:      s.TotalUSD,
		PaidUSD:       s.PaidUSD,
		PaidKHR:       s.PaidKHR,
		ChangeUSD:     s.ChangeUSD,
		ChangeKHR:     s.ChangeKHR,
		ExchangeRate:  s.ExchangeRate,
		PaymentMethod: s.PaymentMethod,
		KHQRReference: s.KHQRReference,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
}

func toWarrantyResponse(w *entity.Warranty) dto.WarrantyResponse {
	return dto.WarrantyResponse{
		ID:             w.ID,
		SerialItemID:   w.SerialItemID,
		StartDate:      w.StartDate.Format(pos.DateLayout),
		EndDate:        w.EndDate.Format(pos.DateLayout),
		DurationMonths: w.DurationMonths,
		Status:         w.Status,
	}
}
