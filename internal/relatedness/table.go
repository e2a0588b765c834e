package relatedness

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/onomast-cli/internal/names"
)

// CountFunc computes one statistic over a subset of records.
type CountFunc func(names.Set) int

// Statistic names a CountFunc for selection and reporting.
type Statistic struct {
	Key   string
	Title string
	Count CountFunc
}

// All lists the statistics in report order.
var All = []Statistic{
	{Key: "repeated-names", Title: "Number of repeated names", Count: RepeatedNames},
	{Key: "persons", Title: "Number of persons with repeated names", Count: PersonsWithRepeatedNames},
	{Key: "repeated-pairs", Title: "Number of repeated pairs", Count: RepeatedPairs},
	{Key: "homonyms", Title: "Number of homonyms (PN1 = PN1)", Count: Homonyms},
	{Key: "siblings", Title: "Number of potential sibling relations (PN2 = PN2)", Count: PotentialSiblings},
	{Key: "genealogical", Title: "Number of potential genealogical relations (PN1 = PN2)", Count: PotentialGenealogicalRelations},
}

// Keys returns the statistic keys in report order.
func Keys() []string {
	out := make([]string, len(All))
	for i, s := range All {
		out[i] = s.Key
	}
	return out
}

// Lookup returns the statistic registered under key.
func Lookup(key string) (Statistic, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, s := range All {
		if s.Key == key {
			return s, true
		}
	}
	return Statistic{}, false
}

// Select resolves keys in the order given; an empty list selects All.
func Select(keys []string) ([]Statistic, error) {
	if len(keys) == 0 {
		return All, nil
	}
	out := make([]Statistic, 0, len(keys))
	for _, k := range keys {
		s, ok := Lookup(k)
		if !ok {
			return nil, fmt.Errorf("unknown statistic %q (valid: %s)", k, strings.Join(Keys(), ", "))
		}
		out = append(out, s)
	}
	return out, nil
}
