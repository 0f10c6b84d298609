package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalDays(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int32
	}{
		{"Exact Three Days", start.AddDate(0, 0, 3), 3},
		{"Partial Day Rounds Up", start.Add(30 * time.Hour), 2},
		{"Under One Day Is One", start.Add(4 * time.Hour), 1},
		{"One Week", start.AddDate(0, 0, 7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(start, tt.end))
		})
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, int32(1), CeilDiv(7, 7))
	assert.Equal(t, int32(2), CeilDiv(8, 7))
	assert.Equal(t, int32(3), CeilDiv(3, 1))
	assert.Equal(t, int32(1), CeilDiv(1, 30))
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, 1+d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name                       string
		start1, end1, start2, end2 time.Time
		want                       bool
	}{
		{"Contained", day(0), day(10), day(2), day(4), true},
		{"Partial Overlap", day(0), day(5), day(3), day(8), true},
		{"Back To Back Do Not Overlap", day(0), day(3), day(3), day(6), false},
		{"Disjoint", day(0), day(2), day(5), day(7), false},
		{"Identical", day(0), day(3), day(0), day(3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.start1, tt.end1, tt.start2, tt.end2))
			assert.Equal(t, tt.want, Overlaps(tt.start2, tt.end2, tt.start1, tt.end1))
		})
	}
}

func TestDocumentNumber(t *testing.T) {
	n := DocumentNumber("QT")
	assert.True(t, strings.HasPrefix(n, "QT-"))
	assert.Equal(t, strings.ToUpper(n), n)

	assert.NotEqual(t, DocumentNumber("INV"), DocumentNumber("INV"))
}
