package matching

import "github.com/jobpulse/backend/pkg/nlp"

// Ontology maps a normalized skill to the normalized skills considered
// related to it. It is consulted only when a required skill has neither an
// exact nor a partial match against the candidate's set. The table is
// immutable after construction; a Scorer never mutates it.
type Ontology map[string][]string

// NewOntology normalizes all keys and values of a raw related-skills table.
func NewOntology(raw map[string][]string) Ontology {
	o := make(Ontology, len(raw))
	for skill, related := range raw {
		key := nlp.Normalize(skill)
		if key == "" {
			continue
		}
		o[key] = nlp.NormalizeSet(related)
	}
	return o
}

// Related returns the related-skills list for a normalized skill, or nil.
func (o Ontology) Related(normalizedSkill string) []string {
	return o[normalizedSkill]
}

// DefaultOntology is the built-in related-skills table. It intentionally
// covers common web/backend stacks only; callers with richer taxonomies
// inject their own table.
func DefaultOntology() Ontology {
	return NewOntology(map[string][]string{
		"javascript": {"typescript", "node.js", "react", "vue", "angular"},
		"typescript": {"javascript", "node.js", "react", "angular"},
		"react":      {"javascript", "typescript", "redux", "next.js"},
		"vue":        {"javascript", "nuxt.js"},
		"angular":    {"typescript", "javascript", "rxjs"},
		"node.js":    {"javascript", "typescript", "express", "nest.js"},
		"python":     {"django", "flask", "fastapi", "pandas", "numpy"},
		"django":     {"python", "flask"},
		"java":       {"spring", "kotlin", "maven", "hibernate"},
		"spring":     {"java", "kotlin"},
		"go":         {"golang", "grpc", "docker", "kubernetes"},
		"golang":     {"go", "grpc", "docker", "kubernetes"},
		"postgresql": {"mysql", "sql", "mariadb"},
		"mysql":      {"postgresql", "sql", "mariadb"},
		"mongodb":    {"nosql", "redis", "dynamodb"},
		"redis":      {"memcached", "mongodb"},
		"docker":     {"kubernetes", "ci/cd", "aws"},
		"kubernetes": {"docker", "helm", "aws", "gcp"},
		"aws":        {"gcp", "azure", "terraform", "docker"},
		"gcp":        {"aws", "azure", "terraform"},
		"terraform":  {"aws", "gcp", "azure", "ansible"},
		"sql":        {"postgresql", "mysql"},
	})
}
