package question

// Record is one multiple-choice question as stored in the bank.
type Record struct {
	Prompt  string
	Options []string
	Correct int // 1-based index into Options
}

// Bank maps a category name to its stored questions. A bank is loaded once at
// startup and treated as immutable for the lifetime of the process.
type Bank map[string][]Record

// Clone returns a deep copy so callers can never mutate the loaded bank.
func (b Bank) Clone() Bank {
	out := make(Bank, len(b))
	for category, records := range b {
		copied := make([]Record, len(records))
		for i, r := range records {
			copied[i] = Record{
				Prompt:  r.Prompt,
				Options: append([]string(nil), r.Options...),
				Correct: r.Correct,
			}
		}
		out[category] = copied
	}
	return out
}

// CategoryInfo summarizes one selectable category.
type CategoryInfo struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}
