package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicUUIDIsStable(t *testing.T) {
	a := DeterministicUUID("team", "abc123")
	b := DeterministicUUID("team", "abc123")
	assert.Equal(t, a, b)
}

func TestDeterministicUUIDNamespaceSeparation(t *testing.T) {
	team := DeterministicUUID("team", "abc123")
	tx := DeterministicUUID("transaction", "abc123")
	assert.NotEqual(t, team, tx)
}

func TestDeterministicUUIDVersionAndVariant(t *testing.T) {
	id := DeterministicUUID("team", "x")
	assert.Equal(t, byte(0x50), id[6]&0xf0, "version nibble")
	assert.Equal(t, byte(0x80), id[8]&0xc0, "variant bits")
}
