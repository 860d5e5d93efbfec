package session

import (
	"math/rand"

	"github.com/mcqapp/quiz-service/internal/question"
)

// BuildOptions controls presentation policy when assembling a session.
type BuildOptions struct {
	// ShuffleOptions permutes each item's options at build time, remapping
	// the correct index. Off by default: options appear in stored order.
	ShuffleOptions bool
	// Rand supplies the permutation source; nil falls back to the global
	// math/rand source. Injected by tests for determinism.
	Rand *rand.Rand
}

// Build assembles the ordered item sequence and the zeroed accumulator for the
// selected categories. Iteration follows selection order; every selected
// category reserves an accumulator slot even when it contributes no items
// (absent from the bank, or emptied by validation). No cap, no dedup, no
// cross-category shuffle: category boundaries stay explicit so per-category
// reporting is always reconstructable.
func Build(selected []string, bank question.Bank, opts BuildOptions) ([]Item, []CategoryScore) {
	items := make([]Item, 0)
	scores := make([]CategoryScore, 0, len(selected))

	for _, category := range selected {
		for _, record := range bank[category] {
			item := Item{
				Category: category,
				Prompt:   record.Prompt,
				Options:  append([]string(nil), record.Options...),
				Correct:  record.Correct,
			}
			if opts.ShuffleOptions {
				shuffleOptions(&item, opts.Rand)
			}
			items = append(items, item)
		}
		scores = append(scores, CategoryScore{Category: category})
	}

	return items, scores
}

// shuffleOptions permutes the item's options in place and remaps Correct so
// it still points at the right answer. The scan compares against the original
// index only; the new index is assigned once, after the loop.
func shuffleOptions(item *Item, rng *rand.Rand) {
	perm := permutation(len(item.Options), rng)

	shuffled := make([]string, len(item.Options))
	correct := item.Correct
	for newPos, oldPos := range perm {
		shuffled[newPos] = item.Options[oldPos]
		if oldPos == item.Correct-1 {
			correct = newPos + 1
		}
	}
	item.Options = shuffled
	item.Correct = correct
}

func permutation(n int, rng *rand.Rand) []int {
	if rng != nil {
		return rng.Perm(n)
	}
	return rand.Perm(n)
}
