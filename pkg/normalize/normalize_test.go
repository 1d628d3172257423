package normalize_test

import (
	"testing"

	"github.com/nubecafe/pos-core/pkg/normalize"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"José Pérez", "jose perez"},
		{"  MARÍA  ", "maria"},
		{"ñoño", "nono"},
		{"sin acentos", "sin acentos"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.Fold(tc.in), "entrada %q", tc.in)
	}
}

func TestContains(t *testing.T) {
	assert.True(t, normalize.Contains("José Pérez", "jose"))
	assert.True(t, normalize.Contains("José Pérez", "PÉREZ"))
	assert.True(t, normalize.Contains("María López", "lopez"))
	assert.False(t, normalize.Contains("María", "pedro"))
	assert.False(t, normalize.Contains("", "x"))
}
