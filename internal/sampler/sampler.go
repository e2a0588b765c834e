// Package sampler draws random fixed-size index subsets from a population.
package sampler

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// DefaultProgressEvery is how many accepted draws pass between progress callbacks.
const DefaultProgressEvery = 10000

var (
	// ErrInvalidArgs is returned when n, m or k are out of range.
	ErrInvalidArgs = errors.New("sampler: invalid arguments")
	// ErrTooManySubsets is returned when distinct subsets are requested but
	// k exceeds the number of m-subsets of n.
	ErrTooManySubsets = errors.New("sampler: more distinct subsets requested than exist")
)

// Subset is one draw: m distinct population indices in ascending order.
type Subset []int

// SampleSet holds the accepted draws in draw order.
type SampleSet []Subset

type options struct {
	src           rand.Source
	progressEvery int
	progress      func(done, total int)
	onReject      func(Subset)
}

// Option configures Draw.
type Option func(*options)

// WithSeed makes the draw sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15) }
}

// WithSource uses src for all randomness.
func WithSource(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

// WithProgress calls fn after every `every` accepted draws.
// A non-positive every selects DefaultProgressEvery.
func WithProgress(every int, fn func(done, total int)) Option {
	return func(o *options) {
		if every <= 0 {
			every = DefaultProgressEvery
		}
		o.progressEvery = every
		o.progress = fn
	}
}

// WithRejectHook calls fn for every draw discarded as a duplicate.
func WithRejectHook(fn func(Subset)) Option {
	return func(o *options) { o.onReject = fn }
}

// Draw returns k subsets of m distinct indices from [0, n), each drawn
// uniformly. With enforceDistinct, a draw equal to an already accepted one is
// discarded and redrawn, so all k subsets differ as sets; this requires
// k <= C(n, m), which is checked before drawing.
func Draw(ctx context.Context, n, m, k int, enforceDistinct bool, opts ...Option) (SampleSet, error) {
	if m < 1 || n < m || k < 1 {
		return nil, fmt.Errorf("%w: need n >= m >= 1 and k >= 1 (n=%d, m=%d, k=%d)", ErrInvalidArgs, n, m, k)
	}
	if enforceDistinct {
		if total := Binomial(n, m); total.Cmp(big.NewInt(int64(k))) < 0 {
			return nil, fmt.Errorf("%w: k=%d but C(%d,%d)=%s", ErrTooManySubsets, k, n, m, total)
		}
	}

	o := options{progressEvery: DefaultProgressEvery}
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	var seen map[string]struct{}
	if enforceDistinct {
		seen = make(map[string]struct{}, k)
	}
	out := make(SampleSet, 0, k)
	for len(out) < k {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := make(Subset, m)
		sampleuv.WithoutReplacement(s, n, o.src)
		slices.Sort(s)
		if enforceDistinct {
			key := s.key()
			if _, dup := seen[key]; dup {
				if o.onReject != nil {
					o.onReject(s)
				}
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, s)
		if o.progress != nil && len(out)%o.progressEvery == 0 {
			o.progress(len(out), k)
		}
	}
	return out, nil
}

// key is the canonical encoding of an ascending subset.
func (s Subset) key() string {
	b := make([]byte, 0, len(s)*2)
	for _, v := range s {
		b = binary.AppendUvarint(b, uint64(v))
	}
	return string(b)
}

// Binomial returns C(n, m) exactly.
func Binomial(n, m int) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(m))
}
