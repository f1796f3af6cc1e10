// Package pdf genera el recibo de venta en PDF.
//
// Layout (A5):
//
//	┌───────────────────────────────────────────┐
//	│  Tienda            │  N° Recibo + Fecha    │
//	│  Cajero / Método de pago                   │
//	│  ───────────────────────────────────────── │
//	│  Cant | Producto (IMEI/serie) | P.Unit | $ │
//	│  ───────────────────────────────────────── │
//	│  Subtotal / Descuento / TOTAL              │
//	│  Pagado USD + KHR / Cambio USD + KHR       │
//	│  ───────────────────────────────────────── │
//	│  QR + garantías                            │
//	└───────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/application/sales"
)

var _ sales.ReceiptRenderer = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// printer formatea montos con separador de miles (1,234.50).
var printer = message.NewPrinter(language.English)

// ReceiptGenerator implementa sales.ReceiptRenderer usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// RenderReceipt genera el recibo de la venta y devuelve los bytes del PDF.
func (g *ReceiptGenerator) RenderReceipt(shopName string, sale *dto.SaleResponse) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Receipt "+sale.InvoiceNumber, true).
		WithAuthor(shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shopName, sale))
	m.AddRows(infoRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(sale.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(sale)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(shopName string, sale *dto.SaleResponse) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(shopName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
		),
		col.New(6).Add(
			text.New("RECEIPT", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(sale.InvoiceNumber, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
			text.New(sale.CreatedAt.Format("2006-01-02 15:04"), props.Text{Size: 7, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func infoRow(sale *dto.SaleResponse) core.Row {
	cashier := sale.CashierName
	if cashier == "" {
		cashier = "-"
	}
	return row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Cashier: %s   |   Payment: %s", cashier, sale.PaymentMethod),
			props.Text{Size: 7, Top: 1, Color: colorGray}),
	))
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		h("Qty", 1, align.Center),
		h("Item", 6, align.Left),
		h("Price", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func itemRows(items []dto.SaleItemResponse) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.ProductName
		if it.IMEI != nil {
			desc += "\nIMEI: " + *it.IMEI
		} else if it.SerialNumber != nil {
			desc += "\nS/N: " + *it.SerialNumber
		}
		height := 6.0
		if it.IMEI != nil || it.SerialNumber != nil {
			height = 10
		}
		out = append(out, row.New(height).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 7, Top: 1})),
			col.New(2).Add(text.New(usd(it.UnitPrice), props.Text{Size: 7, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(usd(it.Total), props.Text{Size: 7, Align: align.Right, Top: 1})),
		))
	}
	return out
}

func totalsRows(sale *dto.SaleResponse) []core.Row {
	amount := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 7.0
		if bold {
			style, size = fontstyle.Bold, 9
		}
		return row.New(5).Add(
			col.New(7).Add(text.New(label, props.Text{Size: size, Style: style, Align: align.Right, Top: 1})),
			col.New(5).Add(text.New(value, props.Text{Size: size, Style: style, Align: align.Right, Top: 1})),
		)
	}
	rows := []core.Row{amount("Subtotal", usd(sale.SubtotalUSD), false)}
	if sale.DiscountUSD.IsPositive() {
		rows = append(rows, amount("Discount", "-"+usd(sale.DiscountUSD), false))
	}
	rows = append(rows,
		amount("TOTAL", usd(sale.TotalUSD), true),
		amount("Total (KHR)", khr(sale.TotalUSD.Mul(sale.ExchangeRate)), false),
		amount("Paid USD", usd(sale.PaidUSD), false),
		amount("Paid KHR", khr(sale.PaidKHR), false),
		amount("Change USD", usd(sale.ChangeUSD), false),
		amount("Change KHR", khr(sale.ChangeKHR), false),
		amount("Rate", "1 USD = "+khr(sale.ExchangeRate), false),
	)
	return rows
}

func footerRows(sale *dto.SaleResponse) []core.Row {
	qr := fmt.Sprintf("%s|%s|%s", sale.InvoiceNumber, sale.TotalUSD.StringFixed(2), sale.CreatedAt.Format("20060102"))
	notes := "Thank you for your purchase!"
	if len(sale.Warranties) > 0 {
		notes = fmt.Sprintf("%d item(s) under warranty until %s.\nKeep this receipt for warranty claims.",
			len(sale.Warranties), sale.Warranties[0].EndDate)
	}
	return []core.Row{
		row.New(30).Add(
			col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})),
			col.New(8).Add(text.New(notes, props.Text{Size: 7, Top: 6, Left: 3, Color: colorGray})),
		),
	}
}

func usd(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.InexactFloat64())
}

func khr(d decimal.Decimal) string {
	return printer.Sprintf("%.0f KHR", d.Round(0).InexactFloat64())
}
