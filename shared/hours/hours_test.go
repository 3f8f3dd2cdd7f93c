package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// at builds an instant with the given wall-clock time; the date is
// irrelevant to the evaluator.
func at(hour, min int) time.Time {
	return time.Date(2024, 6, 15, hour, min, 0, 0, time.UTC)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		now     time.Time
		open    bool
		message string
	}{
		{"inside simple window", "09:00-17:00", at(12, 0), true, "Open · closes in 5h 0m"},
		{"exactly at start is open", "09:00-17:00", at(9, 0), true, "Open · closes in 8h 0m"},
		{"exactly at end is closed", "09:00-17:00", at(17, 0), false, "Closed · opens in 16h 0m"},
		{"minute before end", "09:00-17:00", at(16, 59), true, "Open · closes in 0h 1m"},
		{"before open", "09:00-17:00", at(7, 30), false, "Closed · opens in 1h 30m"},
		{"wrapping open after midnight", "22:00-04:00", at(1, 30), true, "Open · closes in 2h 30m"},
		{"wrapping open before midnight", "22:00-04:00", at(23, 0), true, "Open · closes in 5h 0m"},
		{"wrapping exactly at start", "22:00-04:00", at(22, 0), true, "Open · closes in 6h 0m"},
		{"wrapping exactly at end", "22:00-04:00", at(4, 0), false, "Closed · opens in 18h 0m"},
		{"wrapping closed midday", "22:00-04:00", at(12, 0), false, "Closed · opens in 10h 0m"},
		{"spaces around dash", "21:00 - 04:00", at(22, 15), true, "Open · closes in 5h 45m"},
		{"empty string", "", at(12, 0), false, Unknown},
		{"garbage", "garbage", at(12, 0), false, Unknown},
		{"missing half", "09:00-", at(12, 0), false, Unknown},
		{"hour out of range", "25:00-04:00", at(12, 0), false, Unknown},
		{"minute out of range", "09:61-17:00", at(12, 0), false, Unknown},
		{"not a clock", "ab:cd-17:00", at(12, 0), false, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.spec, tt.now)
			assert.Equal(t, tt.open, got.Open)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestIsOpenAgreesWithEvaluate(t *testing.T) {
	specs := []string{"09:00-17:00", "22:00-04:00", "00:00-00:00", "18:00-02:00", "", "garbage"}
	for _, spec := range specs {
		for min := 0; min < 24*60; min += 17 {
			now := at(min/60, min%60)
			if IsOpen(spec, now) != Evaluate(spec, now).Open {
				t.Fatalf("IsOpen disagrees with Evaluate for %q at %v", spec, now)
			}
		}
	}
}

func TestRemainingAlwaysUnderOneDay(t *testing.T) {
	specs := []string{"09:00-17:00", "22:00-04:00", "00:00-23:59", "12:00-12:00"}
	for _, spec := range specs {
		for min := 0; min < 24*60; min++ {
			got := Evaluate(spec, at(min/60, min%60))
			// the message always carries a remaining duration in [0h 0m, 23h 59m]
			assert.Regexp(t, `(Open · closes in|Closed · opens in) ([0-9]|1[0-9]|2[0-3])h [0-5]?[0-9]m`, got.Message)
		}
	}
}

func TestDegenerateWindowNeverOpen(t *testing.T) {
	// start == end is a non-wrapping empty window
	for min := 0; min < 24*60; min += 29 {
		assert.False(t, IsOpen("12:00-12:00", at(min/60, min%60)))
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("09:00-17:00"))
	assert.True(t, Valid("21:00 - 04:00"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("whenever"))
	assert.False(t, Valid("24:00-04:00"))
}
