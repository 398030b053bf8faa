package filters

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowStrings(current, total int) []string {
	out := []string{}
	for _, it := range Window(current, total) {
		out = append(out, it.String())
	}
	return out
}

func TestWindow(t *testing.T) {
	cases := []struct {
		name           string
		current, total int
		want           []string
	}{
		{"no pages", 1, 0, []string{}},
		{"negative total", 3, -2, []string{}},
		{"single page", 1, 1, []string{"1"}},
		{"middle of ten", 5, 10, []string{"1", "...", "4", "5", "6", "...", "10"}},
		{"first of ten", 1, 10, []string{"1", "2", "...", "10"}},
		{"third of ten", 3, 10, []string{"1", "2", "3", "4", "...", "10"}},
		{"fourth of ten", 4, 10, []string{"1", "...", "3", "4", "5", "...", "10"}},
		{"last of ten", 10, 10, []string{"1", "...", "9", "10"}},
		{"eighth of ten", 8, 10, []string{"1", "...", "7", "8", "9", "10"}},
		{"two pages", 2, 2, []string{"1", "2"}},
		{"four pages", 1, 4, []string{"1", "2", "4"}},
		{"five pages", 1, 5, []string{"1", "2", "...", "5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, windowStrings(tc.current, tc.total))
		})
	}
}

func TestWindowNumbersAscend(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for current := 1; current <= total; current++ {
			last := 0
			for _, it := range Window(current, total) {
				if it.Ellipsis {
					continue
				}
				require.Greater(t, it.Number, last, "current=%d total=%d", current, total)
				last = it.Number
			}
			assert.Equal(t, total, last)
		}
	}
}

func TestWindowJSON(t *testing.T) {
	b, err := json.Marshal(Window(5, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"...",4,5,6,"...",10]`, string(b))
}
