package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobpulse/backend/pkg/nlp"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  Node.js ", "node js"},
		{"REST API", "rest api"},
		{"C++", "c"},
		{"ci/cd", "ci cd"},
		{"", ""},
		{"---", ""},
		{"Go", "go"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nlp.Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

func TestNormalizeSetDropsEmptiesAndDuplicates(t *testing.T) {
	got := nlp.NormalizeSet([]string{"Go", "go", " GO ", "", "react", "React.js"})
	assert.Equal(t, []string{"go", "react", "react js"}, got)
}
