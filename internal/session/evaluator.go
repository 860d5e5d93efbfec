package session

// Submit evaluates one answer against an item and mutates the accumulator:
// the item's category slot (first match on a linear scan) has Attempted
// incremented unconditionally, and Correct incremented when chosen matches the
// item's 1-based correct index. Returns the correctness signal.
//
// Submit does not advance any cursor and does not deduplicate: sequencing
// through items exactly once is the caller's responsibility, so submitting the
// same item twice double-counts its category on purpose.
func Submit(item Item, scores []CategoryScore, chosen int) bool {
	correct := chosen == item.Correct

	for i := range scores {
		if scores[i].Category == item.Category {
			scores[i].Attempted++
			if correct {
				scores[i].Correct++
			}
			break
		}
	}

	return correct
}
