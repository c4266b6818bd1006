package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("What is React?", "what is react"))
	assert.Equal(t, 0.5, Similarity("a b c d", "a b x y"))
	assert.Equal(t, 0.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("alpha", "beta"))
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := "How do you design a schema in MongoDB?"
	b := "How would you design an index in MongoDB?"
	assert.Equal(t, Similarity(a, b), Similarity(b, a))
}

func TestSimilarity_IgnoresRepeatedTokens(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("go go go", "go"))
}

func TestIsDuplicate(t *testing.T) {
	previous := []string{"What is a React hook?"}

	// 5 shared tokens out of 7
	assert.True(t, IsDuplicate("What is a React hook used for?", previous))
	// 2 shared tokens out of 3
	assert.False(t, IsDuplicate("What is SQL?", []string{"What is React?"}))
	assert.False(t, IsDuplicate("anything", nil))
}
