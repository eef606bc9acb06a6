package api

import "fmt"

// Note records one entity-level event: a drop during normalization, a
// skip during rendering, or an ignored unsupported type.
type Note struct {
	Index      int    `json:"index"`
	EntityType string `json:"entity_type"`
	Reason     string `json:"reason"`
}

func (n Note) String() string {
	return fmt.Sprintf("#%d %s: %s", n.Index, n.EntityType, n.Reason)
}

// Diagnostics is the structured trail of one conversion. Everything the
// pipeline recovers from locally lands here instead of aborting the
// document, so callers and tests can assert on it directly.
type Diagnostics struct {
	TotalEntities int `json:"total_entities"`
	Normalized    int `json:"normalized"`
	Rendered      int `json:"rendered"`

	Dropped []Note `json:"dropped,omitempty"` // normalization failures
	Skipped []Note `json:"skipped,omitempty"` // render failures
	Ignored []Note `json:"ignored,omitempty"` // unsupported entity types

	ParseRetried bool   `json:"parse_retried,omitempty"`
	ParseFailed  bool   `json:"parse_failed,omitempty"`
	ParseError   string `json:"parse_error,omitempty"`
	FallbackUsed bool   `json:"fallback_used,omitempty"`
}

func (d *Diagnostics) Drop(index int, entityType, reason string) {
	d.Dropped = append(d.Dropped, Note{Index: index, EntityType: entityType, Reason: reason})
}

func (d *Diagnostics) Skip(index int, entityType, reason string) {
	d.Skipped = append(d.Skipped, Note{Index: index, EntityType: entityType, Reason: reason})
}

func (d *Diagnostics) Ignore(index int, entityType string) {
	d.Ignored = append(d.Ignored, Note{Index: index, EntityType: entityType, Reason: "unsupported entity type"})
}

// Clean reports whether every parsed entity was rendered without a drop,
// skip or ignore.
func (d *Diagnostics) Clean() bool {
	return len(d.Dropped) == 0 && len(d.Skipped) == 0 && len(d.Ignored) == 0 &&
		!d.ParseFailed && !d.FallbackUsed
}

func (d *Diagnostics) Summary() string {
	return fmt.Sprintf("entities=%d normalized=%d rendered=%d dropped=%d skipped=%d ignored=%d",
		d.TotalEntities, d.Normalized, d.Rendered, len(d.Dropped), len(d.Skipped), len(d.Ignored))
}
