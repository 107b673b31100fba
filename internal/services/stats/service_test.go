package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{name: "growth", current: 150, previous: 100, want: 50},
		{name: "decline", current: 50, previous: 100, want: -50},
		{name: "rounded to one decimal", current: 110, previous: 90, want: 22.2},
		{name: "no previous period reports 100", current: 42, previous: 0, want: 100},
		{name: "flat", current: 100, previous: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, percentChange(tt.current, tt.previous))
		})
	}
}
