package warranty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationYears(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "", want: 2},
		{input: "2 years", want: 2},
		{input: "5 years", want: 5},
		{input: "1 year", want: 1},
		{input: "3", want: 3},
		{input: "  4 years  ", want: 4},
		{input: "two years", wantErr: true},
		{input: "0 years", wantErr: true},
		{input: "-1 years", wantErr: true},
		{input: "15 years", wantErr: true},
		{input: "years 2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDurationYears(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
