package medication

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTiming_FrequencyTable(t *testing.T) {
	tests := []struct {
		name      string
		frequency string
		want      []string
	}{
		{"once daily", "once daily", []string{"08:00"}},
		{"twice daily", "Twice daily", []string{"08:00", "20:00"}},
		{"two times a day", "two times a day", []string{"08:00", "20:00"}},
		{"every 12 hours", "every 12 hours", []string{"08:00", "20:00"}},
		{"three times daily", "three times daily", []string{"08:00", "14:00", "20:00"}},
		{"four times daily", "4 times daily", []string{"08:00", "12:00", "18:00", "22:00"}},
		{"every morning", "every morning", []string{"08:00"}},
		{"every evening", "every evening", []string{"20:00"}},
		{"at bedtime", "at bedtime", []string{"22:00"}},
		{"at night", "at night", []string{"22:00"}},
		{"as needed", "as needed", nil},
		{"prn", "PRN", nil},
		{"unrecognized falls back", "with meals", []string{"08:00"}},
		{"empty falls back", "", []string{"08:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTiming(tt.frequency, nil)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTiming_ExplicitTimesWin(t *testing.T) {
	got := ResolveTiming("twice daily", []string{"21:30", "9:15"})
	assert.Equal(t, []string{"09:15", "21:30"}, got)
}

func TestResolveTiming_ExplicitTimesDeduplicated(t *testing.T) {
	got := ResolveTiming("once daily", []string{"08:00", "8:00", "20:00"})
	assert.Equal(t, []string{"08:00", "20:00"}, got)
}

func TestResolveTiming_MalformedExplicitFallsBack(t *testing.T) {
	// One bad entry poisons the whole list; resolution falls back to the
	// frequency table instead of failing.
	got := ResolveTiming("three times daily", []string{"08:00", "25:00"})
	assert.Equal(t, []string{"08:00", "14:00", "20:00"}, got)

	got = ResolveTiming("twice daily", []string{"soonish"})
	assert.Equal(t, []string{"08:00", "20:00"}, got)
}

func TestResolveTiming_Deterministic(t *testing.T) {
	for _, freq := range []string{"once daily", "twice daily", "as needed", "garbage"} {
		first := ResolveTiming(freq, nil)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, ResolveTiming(freq, nil), "frequency %q", freq)
		}
	}
}

func TestResolveTiming_SortedAndUnique(t *testing.T) {
	for _, freq := range []string{"once daily", "twice daily", "three times daily", "4 times daily", "morning", "evening", "bedtime"} {
		got := ResolveTiming(freq, nil)
		require.True(t, sort.StringsAreSorted(got), "frequency %q not sorted: %v", freq, got)
		seen := map[string]bool{}
		for _, v := range got {
			require.False(t, seen[v], "frequency %q has duplicate %s", freq, v)
			seen[v] = true
		}
	}
}
