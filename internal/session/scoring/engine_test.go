package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentageZeroAttempts(t *testing.T) {
	engine := NewEngine(nil)

	assert.Zero(t, engine.Percentage(nil))
	assert.Zero(t, engine.Percentage([]CategoryTotal{{Category: "A"}, {Category: "B"}}))
}

func TestPercentageExact(t *testing.T) {
	engine := NewEngine(nil)

	totals := []CategoryTotal{
		{Category: "A", Correct: 1, Attempted: 1},
		{Category: "B", Correct: 0, Attempted: 1},
	}
	assert.InDelta(t, 50.0, engine.Percentage(totals), 1e-9)

	assert.InDelta(t, 100.0, engine.Percentage([]CategoryTotal{{Correct: 3, Attempted: 3}}), 1e-9)
	assert.InDelta(t, 100.0/3.0, engine.Percentage([]CategoryTotal{{Correct: 1, Attempted: 3}}), 1e-9)
}

func TestMessageBands(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		percentage float64
		want       string
	}{
		{100, "Excellent! Outstanding performance!"},
		{90, "Excellent! Outstanding performance!"},
		{89.999, "Great job! Very good performance!"},
		{80, "Great job! Very good performance!"},
		{79.5, "Good work! Keep it up!"},
		{70, "Good work! Keep it up!"},
		{69, "Not bad! Room for improvement."},
		{60, "Not bad! Room for improvement."},
		{59.999, "Keep practicing! You can do better!"},
		{0, "Keep practicing! You can do better!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.Message(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestSummarize(t *testing.T) {
	engine := NewEngine(nil)

	totals := []CategoryTotal{
		{Category: "A", Correct: 1, Attempted: 1},
		{Category: "B", Correct: 0, Attempted: 1},
	}
	summary := engine.Summarize(totals)

	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, 2, summary.Attempted)
	assert.InDelta(t, 50.0, summary.Percentage, 1e-9)
	// 50% sits below the lowest band.
	assert.Equal(t, "Keep practicing! You can do better!", summary.Message)
	assert.Equal(t, totals, summary.Categories)
}

func TestSummarizeMidBand(t *testing.T) {
	engine := NewEngine(nil)

	summary := engine.Summarize([]CategoryTotal{{Category: "A", Correct: 2, Attempted: 3}})

	assert.InDelta(t, 100.0*2/3, summary.Percentage, 1e-9)
	assert.Equal(t, "Not bad! Room for improvement.", summary.Message)
}

func TestCustomBands(t *testing.T) {
	engine := NewEngine([]Band{{Min: 50, Message: "pass"}})

	assert.Equal(t, "pass", engine.Message(50))
	assert.Equal(t, "Keep practicing! You can do better!", engine.Message(49))
}
