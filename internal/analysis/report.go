package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	defaultReferenceLabel  = "Stamped handles"
	defaultPopulationLabel = "Seals & bullae"
)

// Report collects the results of one Monte-Carlo run.
type Report struct {
	RunID           string
	PopulationFile  string
	ReferenceFile   string
	N, M, K         int
	EnforceDistinct bool
	Seed            uint64
	Results         []*Result
	Images          []string

	ReferenceLabel  string
	PopulationLabel string
}

// Header describes the run parameters.
func (r *Report) Header() string {
	var sb strings.Builder
	sb.WriteString("[MONTE-CARLO RUN]\n")
	fmt.Fprintf(&sb, "Run: %s\n", r.RunID)
	fmt.Fprintf(&sb, "Population: %s (n=%d)\n", r.PopulationFile, r.N)
	fmt.Fprintf(&sb, "Reference: %s (m=%d)\n", r.ReferenceFile, r.M)
	fmt.Fprintf(&sb, "Samples: %d (distinct=%t, seed=%d)\n", r.K, r.EnforceDistinct, r.Seed)
	return sb.String()
}

// Text renders the whole report as plain text.
func (r *Report) Text() string {
	var sb strings.Builder
	sb.WriteString(r.Header())
	sb.WriteString("\n")
	for _, res := range r.Results {
		sb.WriteString(res.Text(r.ReferenceLabel, r.PopulationLabel))
		sb.WriteString("\n")
	}
	if len(r.Images) > 0 {
		sb.WriteString("[IMAGES]\n")
		for _, p := range r.Images {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}
	return sb.String()
}

// Text renders one statistic's comparison. Empty labels fall back to the
// seal/handle wording.
func (res *Result) Text(referenceLabel, populationLabel string) string {
	if referenceLabel == "" {
		referenceLabel = defaultReferenceLabel
	}
	if populationLabel == "" {
		populationLabel = defaultPopulationLabel
	}
	s := res.Summary
	var sb strings.Builder
	sb.WriteString(res.Statistic.Title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", utf8.RuneCountInString(res.Statistic.Title)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s value: %d\n", referenceLabel, res.Target)
	fmt.Fprintf(&sb, "%s values: min=%d, max=%d, mode=%d, median=%s, mean=%s, std-dev=%s, 95th percentile=%s\n",
		populationLabel, s.Min, s.Max, s.Mode,
		formatRounded(s.Median, 2), formatRounded(s.Mean, 2), formatRounded(s.StdDev, 2), formatRounded(s.P95, 4))
	fmt.Fprintf(&sb, "Probability of having %d or more = %s %%\n", res.Target, TailPercent(s.TailProbability))
	return sb.String()
}

// TailPercent formats a probability as a percentage rounded to four decimals.
func TailPercent(p float64) string {
	return formatRounded(p*100, 4)
}

func formatRounded(x float64, places int) string {
	scale := math.Pow(10, float64(places))
	return strconv.FormatFloat(math.Round(x*scale)/scale, 'f', -1, 64)
}
