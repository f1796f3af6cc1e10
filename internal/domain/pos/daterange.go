package pos

import (
	"fmt"
	"time"
)

// DateLayout formato de fecha en query params y respuestas.
const DateLayout = "2006-01-02"

// DateRange rango [Start, End] inclusivo en ambos extremos.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange interpreta start/end (YYYY-MM-DD). End cubre el día completo hasta las 23:59:59.
// Si ambos están vacíos devuelve nil: sin filtro. Si solo uno viene, es error.
func ParseDateRange(start, end string) (*DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("start_date y end_date deben enviarse juntos")
	}
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("start_date inválida (YYYY-MM-DD): %q", start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("end_date inválida (YYYY-MM-DD): %q", end)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("start_date debe ser anterior o igual a end_date")
	}
	return &DateRange{Start: s, End: EndOfDay(e)}, nil
}

// EndOfDay devuelve las 23:59:59 del día de t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// Contains indica si t cae dentro del rango (extremos incluidos).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
