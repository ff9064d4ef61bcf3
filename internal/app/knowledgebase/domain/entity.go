package domain

import (
	"fmt"
	"time"

	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

// Entity is the aggregate root for a stored knowledge base.
type Entity struct {
	kb        KnowledgeBase
	createdAt time.Time
	updatedAt time.Time
	changes   *ChangeTracker
	events    []DomainEvent
}

// NewEntity creates a knowledge base with the given id.
func NewEntity(id string, kb KnowledgeBase, now time.Time) (*Entity, error) {
	kb.ID = id
	kb.normalize()
	if err := kb.Validate(); err != nil {
		return nil, err
	}

	e := &Entity{
		kb:        kb,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}
	e.events = append(e.events, &KnowledgeBaseCreatedEvent{
		KnowledgeBaseID: id,
		DisplayName:     kb.DisplayName,
		CreatedAt:       now,
	})
	return e, nil
}

// ReconstructEntity rebuilds the aggregate from persisted state.
func ReconstructEntity(kb KnowledgeBase, createdAt, updatedAt time.Time) *Entity {
	return &Entity{
		kb:        kb,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
	}
}

func (e *Entity) ID() string                  { return e.kb.ID }
func (e *Entity) CreatedAt() time.Time        { return e.createdAt }
func (e *Entity) UpdatedAt() time.Time        { return e.updatedAt }
func (e *Entity) Changes() *ChangeTracker     { return e.changes }
func (e *Entity) DomainEvents() []DomainEvent { return e.events }

// KnowledgeBase returns a copy of the current resource.
func (e *Entity) KnowledgeBase() KnowledgeBase {
	return e.kb
}

// ApplyUpdate copies the fields named by paths from incoming onto the stored
// resource. Fields outside the mask are never touched. An empty mask is a
// no-op. The result must still be valid; otherwise the entity is unchanged.
func (e *Entity) ApplyUpdate(incoming KnowledgeBase, paths []fieldmask.Path, now time.Time) error {
	if len(paths) == 0 {
		return nil
	}
	if err := AddressablePaths().Validate(paths); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUpdateMask, err)
	}

	dst, err := fieldmask.Document(e.kb)
	if err != nil {
		return err
	}
	src, err := fieldmask.Document(incoming)
	if err != nil {
		return err
	}
	fieldmask.Apply(dst, src, paths)

	var updated KnowledgeBase
	if err := fieldmask.DecodeDocument(dst, &updated); err != nil {
		return err
	}
	updated.ID = e.kb.ID
	updated.normalize()
	if err := updated.Validate(); err != nil {
		return err
	}
	if stored := postgresTable(&e.kb); stored != "" && postgresTable(&updated) != stored {
		return fmt.Errorf("%w: %s", ErrImmutableField, PathVectorDatabaseTable)
	}

	for _, p := range paths {
		e.changes.MarkDirty(fieldGroup(p))
	}
	e.kb = updated
	e.updatedAt = now
	e.events = append(e.events, &KnowledgeBaseUpdatedEvent{
		KnowledgeBaseID: e.kb.ID,
		Paths:           fieldmask.Strings(paths),
		UpdatedAt:       now,
	})
	return nil
}

// ClearEvents drops events that have been written to the outbox.
func (e *Entity) ClearEvents() {
	e.events = nil
}

func fieldGroup(p fieldmask.Path) string {
	switch {
	case p.HasPrefix(PathDisplayName):
		return FieldDisplayName
	case p.HasPrefix(PathDescription):
		return FieldDescription
	case p.HasPrefix(PathTags):
		return FieldTags
	default:
		return FieldConfig
	}
}
