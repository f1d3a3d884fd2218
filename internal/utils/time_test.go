package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilNextUTCDay(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"late evening", time.Date(2026, 4, 10, 22, 30, 0, 0, time.UTC), 90 * time.Minute},
		{"midnight", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
		{"non utc input", time.Date(2026, 4, 11, 5, 0, 0, 0, time.FixedZone("IST", 5*3600+1800)), 30 * time.Minute},
		{"year end", time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UntilNextUTCDay(tt.now))
		})
	}
}
