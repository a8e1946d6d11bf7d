// Package topics defines the closed category vocabulary that proficiency
// statistics are aggregated against. Topics are configuration, not data:
// the core never creates or deletes them, it only records statistics
// against them.
package topics

import "strings"

// Default is the catch-all topic assigned when the generator omits or
// invents a category.
const Default = "General"

// vocabulary is the fixed set of categories, in display order.
var vocabulary = []string{
	"Syntax",
	"Type Safety",
	"Error Handling",
	"Memory Management",
	"Concurrency",
	"Code Structure",
	"Performance",
	"Security",
	"Recursion",
	Default,
}

var byLower = func() map[string]string {
	m := make(map[string]string, len(vocabulary))
	for _, t := range vocabulary {
		m[strings.ToLower(t)] = t
	}
	return m
}()

// All returns the vocabulary in declaration order. The returned slice is a
// copy; callers may mutate it.
func All() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Known reports whether name matches a vocabulary entry, ignoring case.
func Known(name string) bool {
	_, ok := byLower[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Normalize maps a generator-supplied topic tag onto the vocabulary.
// Empty or unrecognized tags collapse to Default so every scored answer
// lands in a real proficiency row.
func Normalize(tag string) string {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return Default
	}
	if canonical, ok := byLower[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return Default
}

// PromptList renders the vocabulary as a comma-separated list for prompt
// injection.
func PromptList() string {
	return strings.Join(vocabulary, ", ")
}
