package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomRoomIDLengthAndAlphabet(t *testing.T) {
	for _, n := range []int{4, 6, 12} {
		id := RandomRoomID(n)
		assert.Len(t, id, n)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(roomIDAlphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestRandomRoomIDVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[RandomRoomID(6)] = true
	}

	// 36^6 combinations; 100 draws colliding down to a handful would
	// mean a broken generator.
	assert.Greater(t, len(seen), 90)
}
