package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

var (
	// ErrNotEditing indicates an edit or save outside edit mode.
	ErrNotEditing = errors.New("knowledge base is not in edit mode")

	// ErrNoChanges indicates a save with an empty dirty tree.
	ErrNoChanges = errors.New("no changes to save")

	// ErrSaveInProgress indicates an edit or save while a save is in flight.
	ErrSaveInProgress = errors.New("save already in progress")
)

// Session is the edit state of one knowledge base.
//
// The baseline snapshot is taken when edit mode is entered and replaced only
// by a successful save. Background refetches delivered through Load while
// editing are remembered but never replace the snapshot or the user's edits.
type Session struct {
	mu       sync.Mutex
	id       string
	updater  contracts.Updater
	pipeline fieldmask.Pipeline
	logger   *zap.Logger

	fetched  *domain.KnowledgeBase
	baseline domain.Form
	current  domain.Form
	editing  bool
	saving   bool
}

// Option configures a Session.
type Option func(*Session)

// WithRules overrides the knowledge-base remap table.
func WithRules(rules fieldmask.Rules) Option {
	return func(s *Session) { s.pipeline.Rules = rules }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession starts a session over the fetched resource kb.
func NewSession(kb *domain.KnowledgeBase, updater contracts.Updater, opts ...Option) (*Session, error) {
	if kb == nil || kb.ID == "" {
		return nil, domain.ErrMissingID
	}

	s := &Session{
		id:       kb.ID,
		updater:  updater,
		pipeline: fieldmask.Pipeline{Rules: domain.KnowledgeBaseRules()},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(kb)
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

// Load delivers a freshly fetched resource. Outside edit mode it replaces the
// displayed state; in edit mode it is kept for the next Enter or Cancel.
func (s *Session) Load(kb *domain.KnowledgeBase) {
	if kb == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if kb.ID != s.id {
		s.logger.Warn("ignoring refetch for another knowledge base",
			zap.String("knowledge_base_id", s.id), zap.String("fetched_id", kb.ID))
		return
	}
	if s.editing {
		s.fetched = kb
		s.logger.Debug("refetch deferred while editing", zap.String("knowledge_base_id", s.id))
		return
	}
	s.reset(kb)
}

// Enter switches to edit mode and snapshots the latest fetched resource.
// Entering again while editing keeps the current edits.
func (s *Session) Enter() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editing {
		return
	}
	s.reset(s.fetched)
	s.editing = true
}

// Edit mutates the form state. The edit is applied as a whole or not at all:
// if it changes a field fixed at creation, ErrImmutableField is returned and
// the form is left as it was.
func (s *Session) Edit(fn func(*domain.Form)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editing {
		return ErrNotEditing
	}
	if s.saving {
		return ErrSaveInProgress
	}
	next := s.current.Clone()
	fn(&next)
	if err := next.CheckImmutable(s.baseline); err != nil {
		return err
	}
	s.current = next
	return nil
}

// Form returns a copy of the current form values. Changes to it do not
// reach the session; use Edit.
func (s *Session) Form() domain.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *Session) IsEditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// DirtyTree compares the current form against the baseline snapshot.
func (s *Session) DirtyTree() fieldmask.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirtyTree()
}

// HasChanges reports whether saving would send anything.
func (s *Session) HasChanges() bool {
	return fieldmask.HasChanges(s.DirtyTree())
}

// Mask returns the update mask a save would send now.
func (s *Session) Mask() []fieldmask.Path {
	return s.pipeline.Compute(s.DirtyTree())
}

// Cancel discards the edits and leaves edit mode. Nothing is sent.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(s.fetched)
	s.editing = false
}

// Save sends the edited resource with its update mask. On success the saved
// resource becomes the new baseline and edit mode ends. On failure the error
// from the updater is returned unchanged and the edits are kept.
func (s *Session) Save(ctx context.Context) (*domain.KnowledgeBase, error) {
	s.mu.Lock()
	if !s.editing {
		s.mu.Unlock()
		return nil, ErrNotEditing
	}
	if s.saving {
		s.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	mask := s.pipeline.Compute(s.dirtyTree())
	if len(mask) == 0 {
		s.mu.Unlock()
		return nil, ErrNoChanges
	}
	req, err := BuildUpdateRequest(s.id, s.current.KnowledgeBase(s.id), mask)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.saving = true
	s.mu.Unlock()

	s.logger.Debug("saving knowledge base",
		zap.String("knowledge_base_id", s.id), zap.Strings("update_mask", fieldmask.Strings(mask)))

	saved, err := s.updater.Update(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		s.logger.Warn("knowledge base save failed", zap.String("knowledge_base_id", s.id), zap.Error(err))
		return nil, err
	}

	if saved == nil {
		saved = req.KnowledgeBase
	}
	s.reset(saved)
	s.editing = false
	return saved, nil
}

func (s *Session) reset(kb *domain.KnowledgeBase) {
	s.fetched = kb
	s.baseline = domain.FormFromKnowledgeBase(kb)
	s.current = domain.FormFromKnowledgeBase(kb)
}

func (s *Session) dirtyTree() fieldmask.Branch {
	return fieldmask.Diff(mustDocument(s.baseline), mustDocument(s.current))
}

func mustDocument(f domain.Form) map[string]any {
	doc, err := fieldmask.Document(f)
	if err != nil {
		panic(fmt.Sprintf("editor: form is not serializable: %v", err))
	}
	return doc
}
