package core

import "strings"

// PromptTemplate renders the classification prompt for an observed event.
// Values are substituted at the {event_description} and {context} markers.
// The template is injected into the filter at construction so tests can
// override it without touching globals.
type PromptTemplate string

// DefaultPromptTemplate is the fixed classification prompt. Its taxonomy is
// closed: backends are instructed to answer with one of the listed labels.
const DefaultPromptTemplate PromptTemplate = `Analyze event. Store ONLY if non-redundant:
✅ STORE if: env-quirk | user-pref | external-api | historical-context | cross-project | workaround
❌ SKIP if: bug-in-code | config-in-repo | docs-added | first-success
Event: {event_description}
Context: {context}
JSON only: {"should_store": bool, "category": str, "reason": str}`

// Render substitutes the event description and context into the template.
func (t PromptTemplate) Render(event, context string) string {
	s := strings.ReplaceAll(string(t), "{event_description}", event)
	return strings.ReplaceAll(s, "{context}", context)
}
