package domain

import (
	"maps"
	"slices"
)

// Persisted field groups of a knowledge base. The pipeline configuration is
// stored as one document, so any change below it marks FieldConfig.
const (
	FieldDisplayName = "display_name"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldConfig      = "config"
)

// ChangeTracker records which persisted field groups an update touched, so
// the repository writes only those columns.
type ChangeTracker struct {
	dirty map[string]bool
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]bool)}
}

func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirty[field] = true
}

func (ct *ChangeTracker) Dirty(field string) bool {
	return ct.dirty[field]
}

func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// DirtyFields returns the dirty field groups in sorted order.
func (ct *ChangeTracker) DirtyFields() []string {
	return slices.Sorted(maps.Keys(ct.dirty))
}

func (ct *ChangeTracker) Clear() {
	clear(ct.dirty)
}
