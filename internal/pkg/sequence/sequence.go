// Package sequence generates document numbers of the form
// <PREFIX><14-digit timestamp>, e.g. ORD20240115103245. A naive
// timestamp scheme collides when two documents are created within the
// same second, so the generator keeps the last issued value and bumps it
// until the clock catches up.
package sequence

import (
	"strconv"
	"sync"
	"time"
)

const (
	OrderPrefix   = "ORD"
	InvoicePrefix = "INV"
	ReceiptPrefix = "RCT"
)

type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is used by tests to control the timestamp source.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns prefix + a strictly increasing 14-digit number seeded from
// the current UTC time. Two calls in the same second yield distinct values.
func (g *Generator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	v, _ := strconv.ParseInt(g.now().UTC().Format("20060102150405"), 10, 64)
	if v <= g.last {
		v = g.last + 1
	}
	g.last = v

	return prefix + strconv.FormatInt(v, 10)
}
