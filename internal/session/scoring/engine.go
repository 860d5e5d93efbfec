package scoring

// Band maps a lower percentage bound to a performance message. Bounds are
// inclusive and checked in descending order; first match wins.
type Band struct {
	Min     float64
	Message string
}

// DefaultBands returns the five fixed performance bands.
func DefaultBands() []Band {
	return []Band{
		{Min: 90, Message: "Excellent! Outstanding performance!"},
		{Min: 80, Message: "Great job! Very good performance!"},
		{Min: 70, Message: "Good work! Keep it up!"},
		{Min: 60, Message: "Not bad! Room for improvement."},
	}
}

// fallbackMessage is used when the percentage falls below every band.
const fallbackMessage = "Keep practicing! You can do better!"

// CategoryTotal mirrors one accumulator slot (duplicated here to avoid an
// import cycle with the session package).
type CategoryTotal struct {
	Category  string
	Correct   int
	Attempted int
}

// Summary is the reduced result of a finished quiz.
type Summary struct {
	Correct    int
	Attempted  int
	Percentage float64
	Message    string
	Categories []CategoryTotal
}

// Engine reduces per-category accumulators into an overall result.
type Engine struct {
	bands []Band
}

// NewEngine creates a scoring engine. Passing no bands uses the defaults.
func NewEngine(bands []Band) *Engine {
	if len(bands) == 0 {
		bands = DefaultBands()
	}
	return &Engine{bands: bands}
}

// Percentage sums all slots and returns 100*correct/attempted, or 0 when
// nothing was attempted.
func (e *Engine) Percentage(totals []CategoryTotal) float64 {
	correct, attempted := 0, 0
	for _, t := range totals {
		correct += t.Correct
		attempted += t.Attempted
	}
	if attempted == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(attempted)
}

// Message maps a percentage to its performance band.
func (e *Engine) Message(percentage float64) string {
	for _, band := range e.bands {
		if percentage >= band.Min {
			return band.Message
		}
	}
	return fallbackMessage
}

// Summarize reduces the accumulator into the final quiz result.
func (e *Engine) Summarize(totals []CategoryTotal) Summary {
	correct, attempted := 0, 0
	for _, t := range totals {
		correct += t.Correct
		attempted += t.Attempted
	}
	pct := e.Percentage(totals)
	return Summary{
		Correct:    correct,
		Attempted:  attempted,
		Percentage: pct,
		Message:    e.Message(pct),
		Categories: append([]CategoryTotal(nil), totals...),
	}
}
