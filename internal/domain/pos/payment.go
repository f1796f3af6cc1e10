// Package pos contiene reglas puras del punto de venta: cobro en dos monedas,
// numeración de facturas y rangos de fechas de reportes.
package pos

import "github.com/shopspring/decimal"

var (
	tolerance = decimal.NewFromFloat(0.01)
	zero      = decimal.Zero
)

// PaymentInput montos recibidos por el cajero.
type PaymentInput struct {
	TotalUSD     decimal.Decimal
	PaidUSD      decimal.Decimal
	PaidKHR      decimal.Decimal
	ExchangeRate decimal.Decimal // KHR por USD
	// LargeChangeUSD: vuelto a partir del cual se entregan dólares enteros y el resto en riel.
	LargeChangeUSD decimal.Decimal
}

// PaymentResult desglose del cobro.
type PaymentResult struct {
	TotalUSD     decimal.Decimal
	PaidUSD      decimal.Decimal
	PaidKHR      decimal.Decimal
	PaidKHRInUSD decimal.Decimal
	TotalPaidUSD decimal.Decimal
	ExchangeRate decimal.Decimal
	IsExact      bool
	IsPaid       bool
	RemainingUSD decimal.Decimal
	RemainingKHR decimal.Decimal
	ChangeUSD    decimal.Decimal
	ChangeKHR    decimal.Decimal
}

// KHRToUSD convierte riel a dólares redondeando a 2 decimales.
func KHRToUSD(khr, rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return zero
	}
	return khr.Div(rate).Round(2)
}

// USDToKHR convierte dólares a riel redondeando a la unidad.
func USDToKHR(usd, rate decimal.Decimal) decimal.Decimal {
	return usd.Mul(rate).Round(0)
}

// CalculatePayment calcula si el pago cubre el total y el vuelto.
// Vuelto < LargeChangeUSD: todo en KHR. Si no: USD enteros + el resto en KHR.
// Diferencias menores a un centavo se consideran pago exacto.
func CalculatePayment(in PaymentInput) PaymentResult {
	rate := in.ExchangeRate
	paidKHRInUSD := KHRToUSD(in.PaidKHR, rate)
	totalPaid := in.PaidUSD.Add(paidKHRInUSD)
	diff := totalPaid.Sub(in.TotalUSD)

	res := PaymentResult{
		TotalUSD:     in.TotalUSD,
		PaidUSD:      in.PaidUSD,
		PaidKHR:      in.PaidKHR,
		PaidKHRInUSD: paidKHRInUSD,
		TotalPaidUSD: totalPaid.Round(2),
		ExchangeRate: rate,
		IsExact:      diff.Abs().LessThan(tolerance),
		IsPaid:       diff.GreaterThanOrEqual(tolerance.Neg()),
		RemainingUSD: zero,
		RemainingKHR: zero,
		ChangeUSD:    zero,
		ChangeKHR:    zero,
	}

	switch {
	case diff.LessThan(tolerance.Neg()):
		res.RemainingUSD = diff.Abs().Round(2)
		res.RemainingKHR = USDToKHR(res.RemainingUSD, rate)
	case diff.GreaterThan(tolerance):
		if diff.LessThan(in.LargeChangeUSD) {
			res.ChangeKHR = USDToKHR(diff, rate)
		} else {
			res.ChangeUSD = diff.Floor()
			res.ChangeKHR = USDToKHR(diff.Sub(res.ChangeUSD), rate)
		}
	}
	return res
}
