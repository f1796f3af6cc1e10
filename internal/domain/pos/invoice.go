package pos

import (
	"fmt"
	"time"
)

// InvoiceNumber arma el número de factura INV-YYYYMMDD-NNNN.
// seq es el correlativo del día empezando en 1.
func InvoiceNumber(day time.Time, seq int) string {
	return fmt.Sprintf("INV-%s-%04d", day.Format("20060102"), seq)
}
