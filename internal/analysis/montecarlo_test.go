package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/onomast-cli/internal/names"
	"github.com/KaramelBytes/onomast-cli/internal/relatedness"
	"github.com/KaramelBytes/onomast-cli/internal/sampler"
)

var population = names.Set{
	{First: "A", Second: "B"},
	{First: "A", Second: "C"},
	{First: "D", Second: "E"},
}

func TestEvaluateScenario(t *testing.T) {
	samples := sampler.SampleSet{{0, 1}, {0, 2}, {1, 2}}
	reference, err := population.Subset([]int{0, 1})
	require.NoError(t, err)

	homonyms, _ := relatedness.Lookup("homonyms")
	res, err := Evaluate(context.Background(), homonyms, reference, population, samples, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Target)
	assert.Equal(t, []int{1, 0, 0}, res.Values)
	assert.InDelta(t, 1.0/3.0, res.Summary.TailProbability, 1e-12)
	assert.Equal(t, 0, res.Summary.Mode)
}

func TestEvaluateWorkerCountDoesNotChangeValues(t *testing.T) {
	pop := make(names.Set, 40)
	pool := []string{"Natan", "Shaphan", "Azaryahu", "Gemaryahu", "Hilqiyahu"}
	for i := range pop {
		pop[i] = names.Pair{First: pool[i%len(pool)], Second: pool[(i*3+1)%len(pool)]}
	}
	samples, err := sampler.Draw(context.Background(), len(pop), 8, 3000, false, sampler.WithSeed(5))
	require.NoError(t, err)
	reference := pop[:8]

	for _, st := range relatedness.All {
		one, err := Evaluate(context.Background(), st, reference, pop, samples, 1)
		require.NoError(t, err)
		many, err := Evaluate(context.Background(), st, reference, pop, samples, 7)
		require.NoError(t, err)
		assert.Equal(t, one.Values, many.Values, st.Key)
		assert.Equal(t, one.Summary, many.Summary, st.Key)
	}
}

func TestEvaluateErrors(t *testing.T) {
	st := relatedness.All[0]
	_, err := Evaluate(context.Background(), st, population, population, nil, 1)
	assert.ErrorIs(t, err, ErrEmptyDistribution)

	_, err = Evaluate(context.Background(), st, population, population, sampler.SampleSet{{0, 9}}, 1)
	assert.ErrorIs(t, err, names.ErrIndexOutOfRange)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, st, population, population, sampler.SampleSet{{0, 1}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
