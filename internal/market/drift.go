package market

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Drifter perturbs catalog prices by a bounded random market factor.
type Drifter struct {
	spread float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDrifter(spread float64) *Drifter {
	return NewDrifterWithSource(spread, rand.NewSource(time.Now().UnixNano()))
}

func NewDrifterWithSource(spread float64, src rand.Source) *Drifter {
	return &Drifter{
		spread: spread,
		rng:    rand.New(src),
	}
}

// Drift returns round(price * (1 + f)) with f uniform in
// [-spread, +spread]. No floor is applied: a price can drift to zero.
func (d *Drifter) Drift(price int) int {
	d.mu.Lock()
	f := d.rng.Float64()*(2*d.spread) - d.spread
	d.mu.Unlock()

	return int(math.Round(float64(price) * (1 + f)))
}
