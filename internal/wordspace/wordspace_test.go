package wordspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/guess-ranker/internal/hint"
)

var vocab = []hint.Word{
	"abide", "allot", "llama", "crane", "slate", "eerie", "speed", "geese",
	"xxxxe", "exxxe", "robot", "books", "kayak", "abbey", "eaten",
}

var secrets = []hint.Word{"allot", "crane", "robot", "speed", "xxxxe"}

func TestCountConsistentSmallVocabulary(t *testing.T) {
	small := []hint.Word{"abide", "allot", "llama"}
	h := hint.Classify("allot", "llama")
	require.Equal(t, "12100", h.String())

	assert.True(t, Consistent("allot", "llama", h))
	assert.False(t, Consistent("llama", "llama", h))
	assert.False(t, Consistent("abide", "llama", h))
	assert.Equal(t, 1, CountConsistent("llama", h, small))
}

func TestSecretAlwaysConsistentWithOwnHint(t *testing.T) {
	for _, s := range vocab {
		for _, g := range vocab {
			h := hint.Classify(s, g)
			assert.True(t, Consistent(s, g, h), "secret=%s guess=%s hint=%s", s, g, h)
			assert.GreaterOrEqual(t, CountConsistent(g, h, vocab), 1)
		}
	}
}

func TestAbsentAccountedByLaterCorrect(t *testing.T) {
	// The leading e is Absent only because the trailing e took the single
	// occurrence; words with e elsewhere must not be rejected for it.
	h := hint.Classify("xxxxe", "exxxe")
	require.Equal(t, "02222", h.String())
	assert.True(t, Consistent("xxxxe", "exxxe", h))
	assert.False(t, Consistent("exxxe", "exxxe", h))
}

func TestAbsentAtLaterCorrectLetterPosition(t *testing.T) {
	// Every word with e at position 0 would have earned a Correct there.
	h := hint.Classify("xxxxe", "exxxe")
	for _, w := range []hint.Word{"exxxe", "eaten", "eerie"} {
		assert.False(t, Consistent(w, "exxxe", h), w)
	}
	assert.Equal(t, 1, CountConsistent("exxxe", h, vocab))
}

func TestAbsentAccountedByEarlierMarker(t *testing.T) {
	h := hint.Hint{hint.Present, hint.Absent, hint.Absent, hint.Absent, hint.Absent}
	assert.True(t, Consistent("aezzz", "eexxx", h))
	assert.False(t, Consistent("azzzz", "eexxx", h))
}

func TestLengthMismatchIsNeverConsistent(t *testing.T) {
	h := hint.Classify("cranes", "cranes")
	assert.False(t, Consistent("crane", "cranes", h))
	assert.False(t, Consistent("cranes", "crane", hint.Classify("crane", "crane")))
	assert.Equal(t, 0, CountConsistent("cranes", h, []hint.Word{"crane", "slate"}))
}

func TestAbsentRejectsUnaccountedLetter(t *testing.T) {
	h := hint.Hint{hint.Absent, hint.Absent, hint.Absent, hint.Absent, hint.Absent}
	assert.False(t, Consistent("crane", "zzzze", h))
	assert.True(t, Consistent("slabs", "zzzze", h))
}

func TestCountIncludesGuessOnFullMatch(t *testing.T) {
	h := hint.Classify("crane", "crane")
	assert.Equal(t, 1, CountConsistent("crane", h, vocab))
}

func TestAverageReduction(t *testing.T) {
	cases := map[hint.Word]float64{
		"abide": 1.8,
		"llama": 4.6,
		"slate": 1.4,
		"kayak": 5.6,
		"eaten": 1.4,
	}
	for guess, want := range cases {
		assert.InDelta(t, want, AverageReduction(guess, secrets, vocab), 1e-9, "guess=%s", guess)
	}
}

func TestWeightedScore(t *testing.T) {
	// eaten receives 16 absent, 8 present and 1 correct over the secrets.
	assert.InDelta(t, 8*0.02+1*0.05, WeightedScore("eaten", secrets, DefaultWeights), 1e-12)
	// kayak receives no correct marks.
	assert.InDelta(t, 2*0.02, WeightedScore("kayak", secrets, DefaultWeights), 1e-12)
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights.Validate())
	assert.ErrorIs(t, Weights{0, 0.05, 0.02}.Validate(), ErrBadWeights)
	assert.ErrorIs(t, Weights{-1, 0, 0}.Validate(), ErrBadWeights)
}
