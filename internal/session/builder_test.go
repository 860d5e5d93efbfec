package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcqapp/quiz-service/internal/question"
)

func testBank() question.Bank {
	return question.Bank{
		"A": {
			{Prompt: "a1", Options: []string{"x", "y", "z"}, Correct: 1},
			{Prompt: "a2", Options: []string{"x", "y"}, Correct: 2},
		},
		"B": {
			{Prompt: "b1", Options: []string{"x", "y"}, Correct: 2},
		},
	}
}

func TestBuildFollowsSelectionOrder(t *testing.T) {
	items, scores := Build([]string{"B", "A"}, testBank(), BuildOptions{})

	require.Len(t, items, 3)
	assert.Equal(t, "b1", items[0].Prompt)
	assert.Equal(t, "B", items[0].Category)
	assert.Equal(t, "a1", items[1].Prompt)
	assert.Equal(t, "a2", items[2].Prompt)

	require.Len(t, scores, 2)
	assert.Equal(t, CategoryScore{Category: "B"}, scores[0])
	assert.Equal(t, CategoryScore{Category: "A"}, scores[1])
}

func TestBuildAbsentCategoryReservesSlot(t *testing.T) {
	items, scores := Build([]string{"A", "Missing"}, testBank(), BuildOptions{})

	assert.Len(t, items, 2)
	require.Len(t, scores, 2)
	assert.Equal(t, "Missing", scores[1].Category)
	assert.Zero(t, scores[1].Attempted)
}

func TestBuildEmptySelection(t *testing.T) {
	items, scores := Build(nil, testBank(), BuildOptions{})

	assert.Empty(t, items)
	assert.Empty(t, scores)
}

func TestBuildDoesNotMutateBank(t *testing.T) {
	bank := testBank()
	items, _ := Build([]string{"A"}, bank, BuildOptions{
		ShuffleOptions: true,
		Rand:           rand.New(rand.NewSource(1)),
	})

	require.NotEmpty(t, items)
	assert.Equal(t, []string{"x", "y", "z"}, bank["A"][0].Options)
	assert.Equal(t, 1, bank["A"][0].Correct)
}

func TestShuffleRemapsCorrectIndex(t *testing.T) {
	// The correct answer sits in a middle slot so a permutation can move
	// another option onto its remapped position.
	bank := question.Bank{
		"A": {{Prompt: "q", Options: []string{"w1", "right", "w2", "w3"}, Correct: 2}},
	}

	for seed := int64(0); seed < 200; seed++ {
		items, _ := Build([]string{"A"}, bank, BuildOptions{
			ShuffleOptions: true,
			Rand:           rand.New(rand.NewSource(seed)),
		})
		require.Len(t, items, 1)
		item := items[0]
		require.GreaterOrEqual(t, item.Correct, 1)
		require.LessOrEqual(t, item.Correct, len(item.Options))
		assert.Equal(t, "right", item.Options[item.Correct-1], "seed %d", seed)
		assert.ElementsMatch(t, []string{"right", "w1", "w2", "w3"}, item.Options)
	}
}

func TestNoShuffleKeepsStoredOrder(t *testing.T) {
	items, _ := Build([]string{"A"}, testBank(), BuildOptions{})

	require.Len(t, items, 2)
	assert.Equal(t, []string{"x", "y", "z"}, items[0].Options)
	assert.Equal(t, 1, items[0].Correct)
}
