package relatedness

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/onomast-cli/internal/names"
)

func p(a, b string) names.Pair { return names.Pair{First: a, Second: b} }

func counts(t *testing.T, s names.Set, idx []int) map[string]int {
	t.Helper()
	if idx != nil {
		var err error
		s, err = s.Subset(idx)
		require.NoError(t, err)
	}
	out := map[string]int{}
	for _, st := range All {
		out[st.Key] = st.Count(s)
	}
	return out
}

func TestSharedFirstName(t *testing.T) {
	population := names.Set{p("A", "B"), p("A", "C"), p("D", "E")}

	got := counts(t, population, []int{0, 1})
	assert.Equal(t, map[string]int{
		"repeated-names": 1,
		"persons":        2,
		"repeated-pairs": 1,
		"homonyms":       1,
		"siblings":       0,
		"genealogical":   0,
	}, got)

	for _, idx := range [][]int{{0, 2}, {1, 2}} {
		for key, v := range counts(t, population, idx) {
			assert.Zero(t, v, "%s on %v", key, idx)
		}
	}
}

func TestRepeatedNamesFirstMatchWins(t *testing.T) {
	// Both names coincide, but only the first name of record i is recorded.
	assert.Equal(t, 1, RepeatedNames(names.Set{p("X", "Y"), p("X", "Y")}))
	// First name of i misses, second name of i is recorded.
	assert.Equal(t, 1, RepeatedNames(names.Set{p("X", "Y"), p("Y", "Z")}))
	// The same name matched in several pairs is counted once.
	assert.Equal(t, 1, RepeatedNames(names.Set{p("A", "B"), p("A", "C"), p("A", "D")}))
	// Cross field: i.First == j.Second.
	assert.Equal(t, 1, RepeatedNames(names.Set{p("A", "B"), p("C", "A")}))
}

func TestPairwiseCategories(t *testing.T) {
	s := names.Set{p("A", "B"), p("B", "A"), p("C", "B"), p("A", "D")}
	assert.Equal(t, 1, Homonyms(s))                       // (0,3)
	assert.Equal(t, 1, PotentialSiblings(s))              // (0,2)
	assert.Equal(t, 3, PotentialGenealogicalRelations(s)) // (0,1), (1,2), (1,3)
	assert.Equal(t, 5, RepeatedPairs(s))
	assert.Equal(t, 4, PersonsWithRepeatedNames(s))
}

func TestEmptyAndSingleton(t *testing.T) {
	for _, s := range []names.Set{nil, {p("A", "A")}} {
		for key, v := range counts(t, s, nil) {
			assert.Zero(t, v, key)
		}
	}
}

func TestDistinctNamesHaveNoCoincidences(t *testing.T) {
	s := make(names.Set, 20)
	for i := range s {
		s[i] = p("f"+strconv.Itoa(i), "s"+strconv.Itoa(i))
	}
	for key, v := range counts(t, s, nil) {
		assert.Zero(t, v, key)
	}
}

func TestRandomSubsetBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	pool := []string{"Azaryahu", "Gemaryahu", "Hilqiyahu", "Natan", "Shaphan", "Elyashib", "Yaazanyahu"}
	for trial := 0; trial < 300; trial++ {
		m := 1 + rng.IntN(15)
		s := make(names.Set, m)
		for i := range s {
			s[i] = p(pool[rng.IntN(len(pool))], pool[rng.IntN(len(pool))])
		}
		c := counts(t, s, nil)
		pairs := c["repeated-pairs"]
		assert.GreaterOrEqual(t, pairs, c["homonyms"])
		assert.GreaterOrEqual(t, pairs, c["siblings"])
		assert.GreaterOrEqual(t, pairs, c["genealogical"])
		// Every matching pair falls in at least one of the three categories.
		assert.LessOrEqual(t, pairs, c["homonyms"]+c["siblings"]+c["genealogical"])
		assert.LessOrEqual(t, c["persons"], 2*pairs)
		assert.LessOrEqual(t, c["persons"], m)
		if pairs == 0 {
			assert.Zero(t, c["repeated-names"])
		} else {
			assert.Positive(t, c["repeated-names"])
		}
	}
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	got, err := Select([]string{"Siblings", "homonyms"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "siblings", got[0].Key)
	assert.Equal(t, "homonyms", got[1].Key)

	_, err = Select([]string{"cousins"})
	assert.ErrorContains(t, err, "unknown statistic")
}
