package services_test

import (
	"testing"

	"github.com/aeterna-motors/booking-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestNewReferenceID_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		ref := services.NewReferenceID()
		assert.Len(t, ref, 9)
		assert.Regexp(t, referenceIDPattern, ref)
	}
}

func TestNewReferenceID_Distinct(t *testing.T) {
	const n = 1000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		ref := services.NewReferenceID()
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
