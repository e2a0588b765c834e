// Package relatedness counts name coincidences among the records of a subset.
//
// Every statistic examines each unordered pair of records {i, j} with i < j
// once, so a call costs O(m²) string comparisons for a subset of m records.
// All functions are pure and do not modify their input.
package relatedness

import "github.com/KaramelBytes/onomast-cli/internal/names"

// RepeatedNames returns the number of distinct names shared across records.
//
// For each pair, the first name of record i is tested against both names of
// record j and recorded if it matches; only when it does not is the second
// name of record i tested the same way. A name reached solely through the
// second test of a pair whose first test already matched is therefore not
// recorded for that pair.
func RepeatedNames(s names.Set) int {
	repeated := make(map[string]struct{})
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			a, b := s[i], s[j]
			if a.First == b.First || a.First == b.Second {
				repeated[a.First] = struct{}{}
			} else if a.Second == b.First || a.Second == b.Second {
				repeated[a.Second] = struct{}{}
			}
		}
	}
	return len(repeated)
}

// PersonsWithRepeatedNames returns the number of records sharing at least one
// name with some other record. A record is counted once however many partners
// it has.
func PersonsWithRepeatedNames(s names.Set) int {
	involved := make([]bool, len(s))
	count := 0
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if !shareName(s[i], s[j]) {
				continue
			}
			if !involved[i] {
				involved[i] = true
				count++
			}
			if !involved[j] {
				involved[j] = true
				count++
			}
		}
	}
	return count
}

// RepeatedPairs returns the number of record pairs sharing any name in any position.
func RepeatedPairs(s names.Set) int {
	return countPairs(s, shareName)
}

// Homonyms returns the number of record pairs with the same first name.
func Homonyms(s names.Set) int {
	return countPairs(s, func(a, b names.Pair) bool { return a.First == b.First })
}

// PotentialSiblings returns the number of record pairs with the same second name.
func PotentialSiblings(s names.Set) int {
	return countPairs(s, func(a, b names.Pair) bool { return a.Second == b.Second })
}

// PotentialGenealogicalRelations returns the number of record pairs where one
// record's first name is the other's second name.
func PotentialGenealogicalRelations(s names.Set) int {
	return countPairs(s, func(a, b names.Pair) bool {
		return a.First == b.Second || a.Second == b.First
	})
}

func shareName(a, b names.Pair) bool {
	return a.First == b.First || a.First == b.Second ||
		a.Second == b.First || a.Second == b.Second
}

func countPairs(s names.Set, match func(a, b names.Pair) bool) int {
	count := 0
	for i := 0; i < len(s); i++ {
		for j := i + 1; j < len(s); j++ {
			if match(s[i], s[j]) {
				count++
			}
		}
	}
	return count
}
