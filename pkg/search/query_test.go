package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintIgnoresSkillOrderAndCase(t *testing.T) {
	a := Query{Term: "backend", Skills: []string{"Go", "PostgreSQL", "Docker"}}
	b := Query{Term: "backend", Skills: []string{"docker", "postgresql", "go"}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintChangesWithQueryFields(t *testing.T) {
	base := Query{Term: "backend", Location: "Berlin"}
	assert.NotEqual(t, base.Fingerprint(), Query{Term: "frontend", Location: "Berlin"}.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), Query{Term: "backend", Location: "Munich"}.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), Query{Term: "backend", Location: "Berlin", Cursor: 42}.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), Query{Term: "backend", Location: "Berlin", Sort: SortDate}.Fingerprint())
}

func TestFingerprintStableForDefaults(t *testing.T) {
	// explicit defaults and implicit defaults canonicalize identically
	implicit := Query{Term: "go"}
	explicit := Query{Term: "go", Sort: SortRelevance, PageSize: defaultPageSize}
	assert.Equal(t, implicit.Fingerprint(), explicit.Fingerprint())
}

func TestNormalizedDefaults(t *testing.T) {
	n := Query{}.Normalized()
	assert.Equal(t, SortRelevance, n.Sort)
	assert.Equal(t, defaultPageSize, n.PageSize)
	assert.Zero(t, n.Cursor)

	n = Query{Sort: "bogus", PageSize: 10_000, Cursor: -5}.Normalized()
	assert.Equal(t, SortRelevance, n.Sort)
	assert.Equal(t, maxPageSize, n.PageSize)
	assert.Zero(t, n.Cursor)
}

func TestFilterNormalizesFields(t *testing.T) {
	f := Query{Location: " Berlin ", Type: "Full-Time", Skills: []string{"Go", "go"}, Level: "Senior"}.Filter()
	assert.Equal(t, "berlin", f.Location)
	assert.Equal(t, "full time", f.Type)
	assert.Equal(t, []string{"go"}, f.Skills)
	assert.Equal(t, "senior", f.Level)
}
