package medication

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// timePattern matches a 24h "HH:MM" or "H:MM" time of day.
var timePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// frequencyRule maps a frequency phrase to its default times-of-day.
// Rules are tried in order; the first match wins.
type frequencyRule struct {
	pattern *regexp.Regexp
	times   []string
}

var frequencyRules = []frequencyRule{
	{regexp.MustCompile(`as needed|if needed|when required|prn`), nil},
	{regexp.MustCompile(`four times|4 times|4x|qid|every 6 hours`), []string{"08:00", "12:00", "18:00", "22:00"}},
	{regexp.MustCompile(`three times|3 times|3x|tid|every 8 hours`), []string{"08:00", "14:00", "20:00"}},
	{regexp.MustCompile(`twice|two times|2 times|2x|bid|every 12 hours`), []string{"08:00", "20:00"}},
	{regexp.MustCompile(`once|one time|1 time|1x|every day|daily`), []string{"08:00"}},
	{regexp.MustCompile(`morning`), []string{"08:00"}},
	{regexp.MustCompile(`bedtime|night`), []string{"22:00"}},
	{regexp.MustCompile(`evening`), []string{"20:00"}},
}

// defaultTimes is used when the frequency text matches no rule at all.
var defaultTimes = []string{"08:00"}

// ResolveTiming maps a free-text dosing frequency, optionally with explicit
// times, to a canonical sorted set of unique "HH:MM" values. Explicit times
// win when every entry is a valid time of day; otherwise resolution falls
// back to the frequency rule table. This fail-open fallback is what keeps a
// malformed AI-extracted time list from ever blocking reminder generation.
// The result is empty only for as-needed frequencies.
func ResolveTiming(frequency string, explicit []string) []string {
	if times, ok := normalizeExplicit(explicit); ok {
		return times
	}

	normalized := strings.ToLower(strings.TrimSpace(frequency))
	for _, rule := range frequencyRules {
		if rule.pattern.MatchString(normalized) {
			return append([]string(nil), rule.times...)
		}
	}
	return append([]string(nil), defaultTimes...)
}

// normalizeExplicit validates, zero-pads, deduplicates and sorts an explicit
// time list. Returns ok=false when the list is empty or any entry is not a
// valid "HH:MM" time.
func normalizeExplicit(explicit []string) ([]string, bool) {
	if len(explicit) == 0 {
		return nil, false
	}

	seen := make(map[string]bool, len(explicit))
	times := make([]string, 0, len(explicit))
	for _, raw := range explicit {
		m := timePattern.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			return nil, false
		}
		hour, _ := strconv.Atoi(m[1])
		canonical := fmt.Sprintf("%02d:%s", hour, m[2])
		if !seen[canonical] {
			seen[canonical] = true
			times = append(times, canonical)
		}
	}
	sort.Strings(times)
	return times, true
}
