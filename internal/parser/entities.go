package parser

import "context"

// Entities holds the typed entities an external extractor recognizes in
// receipt text. Empty fields mean the entity was not found.
type Entities struct {
	Org  string
	Date string
	Time string
}

// EntityExtractor is an external named-entity capability the parser can
// consult as a last resort when its regex stages come up empty. The LLM
// service provides the production implementation.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) (Entities, error)
}
