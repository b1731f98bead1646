package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCap(t *testing.T) {
	t.Parallel()

	many := make([]Match, 25)
	for i := range many {
		many[i] = Match{Symbol: string(rune('A' + i))}
	}

	assert.Len(t, Cap(many), MaxMatches)
	assert.Equal(t, "A", Cap(many)[0].Symbol)
	assert.Len(t, Cap(many[:3]), 3)
	assert.Empty(t, Cap(nil))
}
