package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOwnedBy(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	owned := Recipe{ID: 100001, Title: "Soup", UserID: &owner}
	assert.True(t, owned.OwnedBy(owner))
	assert.False(t, owned.OwnedBy(other))

	// Gateway-sourced rows have no owner.
	external := Recipe{ID: 716429, Title: "Pasta"}
	assert.False(t, external.OwnedBy(owner))
}
