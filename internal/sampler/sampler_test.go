package sampler

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawShape(t *testing.T) {
	cases := []struct{ n, m, k int }{
		{1, 1, 3},
		{5, 5, 2},
		{10, 3, 500},
		{80, 27, 200},
	}
	for _, tc := range cases {
		got, err := Draw(context.Background(), tc.n, tc.m, tc.k, false, WithSeed(7))
		require.NoError(t, err)
		require.Len(t, got, tc.k)
		for _, s := range got {
			require.Len(t, s, tc.m)
			for i, v := range s {
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, tc.n)
				if i > 0 {
					assert.Less(t, s[i-1], v, "subset %v not strictly ascending", s)
				}
			}
		}
	}
}

func TestDrawDistinct(t *testing.T) {
	// C(6,3) = 20: ask for every subset.
	got, err := Draw(context.Background(), 6, 3, 20, true, WithSeed(1))
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, s := range got {
		k := s.key()
		assert.False(t, seen[k], "duplicate subset %v", s)
		seen[k] = true
	}
	assert.Len(t, seen, 20)
}

func TestDrawAllowsDuplicatesWhenNotEnforced(t *testing.T) {
	// C(3,2) = 3, so 50 draws must repeat.
	got, err := Draw(context.Background(), 3, 2, 50, false, WithSeed(3))
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

func TestDrawRejectsImpossibleDistinct(t *testing.T) {
	_, err := Draw(context.Background(), 4, 2, 7, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManySubsets))
}

func TestDrawInvalidArgs(t *testing.T) {
	for _, tc := range []struct{ n, m, k int }{
		{3, 4, 1},
		{3, 0, 1},
		{3, 2, 0},
	} {
		_, err := Draw(context.Background(), tc.n, tc.m, tc.k, false)
		assert.ErrorIs(t, err, ErrInvalidArgs, "n=%d m=%d k=%d", tc.n, tc.m, tc.k)
	}
}

func TestDrawSeedIsReproducible(t *testing.T) {
	a, err := Draw(context.Background(), 30, 5, 100, false, WithSeed(42))
	require.NoError(t, err)
	b, err := Draw(context.Background(), 30, 5, 100, false, WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDrawProgressAndRejects(t *testing.T) {
	var ticks []int
	rejects := 0
	_, err := Draw(context.Background(), 5, 2, 10, true,
		WithSeed(9),
		WithProgress(4, func(done, total int) {
			assert.Equal(t, 10, total)
			ticks = append(ticks, done)
		}),
		WithRejectHook(func(Subset) { rejects++ }),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, ticks)
	// Drawing all 10 subsets of a 5-set almost surely hits duplicates.
	assert.Positive(t, rejects)
}

func TestDrawCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Draw(ctx, 10, 2, 5, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBinomial(t *testing.T) {
	assert.Equal(t, "20", Binomial(6, 3).String())
	assert.Equal(t, "1", Binomial(5, 5).String())
	// C(80,27) overflows int64.
	assert.Equal(t, 1, Binomial(80, 27).Cmp(Binomial(62, 31)))
}

func TestDrawWithSource(t *testing.T) {
	var seed [32]byte
	copy(seed[:], "onomast chacha8 fixed test seed")
	a, err := Draw(context.Background(), 30, 4, 50, true, WithSource(rand.NewChaCha8(seed)))
	require.NoError(t, err)
	b, err := Draw(context.Background(), 30, 4, 50, true, WithSource(rand.NewChaCha8(seed)))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Draw(context.Background(), 30, 4, 50, true, WithSeed(1))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
