package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

type fakeUpdater struct {
	requests []*dto.UpdateRequest
	reply    *domain.KnowledgeBase
	err      error
}

func (f *fakeUpdater) Update(_ context.Context, req *dto.UpdateRequest) (*domain.KnowledgeBase, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func fetchedKnowledgeBase() *domain.KnowledgeBase {
	return &domain.KnowledgeBase{
		ID:          "kb-1",
		DisplayName: "Docs",
		Config: domain.Config{
			VectorDatabase: &domain.VectorDatabase{Postgres: &domain.PostgresVectorDatabase{DSN: "postgres://a", Table: "chunks"}},
			Indexer: &domain.Indexer{
				ChunkSize:        512,
				ChunkOverlap:     64,
				InputTopics:      []string{"orders", "logs-.*"},
				RedpandaUsername: "indexer",
			},
			Retriever: &domain.Retriever{Reranker: &domain.Reranker{
				Enabled:  true,
				Provider: &domain.RerankerProvider{Cohere: &domain.CohereRerankerProvider{APIKey: "k", Model: "rerank-v3.5"}},
			}},
		},
	}
}

func newSession(t *testing.T, up *fakeUpdater) *Session {
	t.Helper()
	s, err := NewSession(fetchedKnowledgeBase(), up)
	require.NoError(t, err)
	return s
}

func TestNewSession_RequiresID(t *testing.T) {
	_, err := NewSession(&domain.KnowledgeBase{}, &fakeUpdater{})
	assert.ErrorIs(t, err, domain.ErrMissingID)

	_, err = NewSession(nil, &fakeUpdater{})
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestSession_EditRequiresEditMode(t *testing.T) {
	s := newSession(t, &fakeUpdater{})

	err := s.Edit(func(f *domain.Form) { f.DisplayName = "x" })
	assert.ErrorIs(t, err, ErrNotEditing)

	_, err = s.Save(context.Background())
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestSession_NoChangesDisablesSave(t *testing.T) {
	up := &fakeUpdater{}
	s := newSession(t, up)
	s.Enter()

	assert.False(t, s.HasChanges())
	assert.Empty(t, s.Mask())

	_, err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Empty(t, up.requests)
}

func TestSession_SaveSendsFullResourceWithMask(t *testing.T) {
	up := &fakeUpdater{}
	s := newSession(t, up)
	s.Enter()

	require.NoError(t, s.Edit(func(f *domain.Form) {
		f.DisplayName = "Docs v2"
		f.Indexer.ExactTopics = append(f.Indexer.ExactTopics, "payments")
		f.Indexer.RedpandaUsername = "indexer-2"
	}))
	assert.True(t, s.HasChanges())

	saved, err := s.Save(context.Background())
	require.NoError(t, err)
	require.Len(t, up.requests, 1)

	req := up.requests[0]
	assert.Equal(t, "kb-1", req.ID)
	assert.ElementsMatch(t, []string{"display_name", "indexer.input_topics", "indexer.redpanda_username"}, req.UpdateMask.GetPaths())

	// The payload is the complete resource, not a delta.
	assert.Equal(t, "postgres://a", req.KnowledgeBase.VectorDatabase.Postgres.DSN)
	assert.Equal(t, []string{"orders", "payments", "logs-.*"}, req.KnowledgeBase.Indexer.InputTopics)

	// Without a reply body the sent resource becomes the new baseline.
	assert.Equal(t, req.KnowledgeBase, saved)
	assert.False(t, s.IsEditMode())
	assert.False(t, s.HasChanges())
	assert.Equal(t, "Docs v2", s.Form().DisplayName)
}

func TestSession_SaveUsesServerReplyAsBaseline(t *testing.T) {
	reply := fetchedKnowledgeBase()
	reply.DisplayName = "Docs (server)"
	up := &fakeUpdater{reply: reply}
	s := newSession(t, up)
	s.Enter()
	require.NoError(t, s.Edit(func(f *domain.Form) { f.DisplayName = "Docs v2" }))

	saved, err := s.Save(context.Background())
	require.NoError(t, err)

	assert.Same(t, reply, saved)
	assert.Equal(t, "Docs (server)", s.Form().DisplayName)
}

func TestSession_RerankerProviderChangeCollapses(t *testing.T) {
	up := &fakeUpdater{}
	s := newSession(t, up)
	s.Enter()
	require.NoError(t, s.Edit(func(f *domain.Form) {
		f.Retriever.Reranker.Provider.Provider.Value.APIKey = "rotated"
	}))

	assert.Equal(t, []fieldmask.Path{domain.PathRetriever}, s.Mask())
}

func TestSession_SaveFailureKeepsEdits(t *testing.T) {
	rpcErr := errors.New("unavailable")
	up := &fakeUpdater{err: rpcErr}
	s := newSession(t, up)
	s.Enter()
	require.NoError(t, s.Edit(func(f *domain.Form) { f.Description = "new" }))

	_, err := s.Save(context.Background())
	assert.Same(t, rpcErr, err)
	assert.True(t, s.IsEditMode())
	assert.True(t, s.HasChanges())
	assert.Equal(t, "new", s.Form().Description)
}

func TestSession_RefetchWhileEditingDoesNotClobber(t *testing.T) {
	s := newSession(t, &fakeUpdater{})
	s.Enter()
	require.NoError(t, s.Edit(func(f *domain.Form) { f.DisplayName = "mine" }))

	refetched := fetchedKnowledgeBase()
	refetched.DisplayName = "theirs"
	s.Load(refetched)

	assert.Equal(t, "mine", s.Form().DisplayName)
	assert.Equal(t, []fieldmask.Path{domain.PathDisplayName}, s.Mask())

	// After cancelling, the latest fetched state is shown.
	s.Cancel()
	assert.False(t, s.IsEditMode())
	assert.Equal(t, "theirs", s.Form().DisplayName)
	assert.False(t, s.HasChanges())
}

func TestSession_RefetchOutsideEditModeReplacesState(t *testing.T) {
	s := newSession(t, &fakeUpdater{})

	refetched := fetchedKnowledgeBase()
	refetched.DisplayName = "theirs"
	s.Load(refetched)
	assert.Equal(t, "theirs", s.Form().DisplayName)

	other := fetchedKnowledgeBase()
	other.ID = "kb-2"
	other.DisplayName = "other"
	s.Load(other)
	assert.Equal(t, "theirs", s.Form().DisplayName)
}

func TestSession_EnterTwiceKeepsEdits(t *testing.T) {
	s := newSession(t, &fakeUpdater{})
	s.Enter()
	require.NoError(t, s.Edit(func(f *domain.Form) { f.DisplayName = "mine" }))
	s.Enter()

	assert.Equal(t, "mine", s.Form().DisplayName)
}

func TestSession_CancelSendsNothing(t *testing.T) {
	up := &fakeUpdater{}
	s := newSession(t, up)
	s.Enter()
	require.NoError(t, s.Edit(func(f *domain.Form) { f.DisplayName = "discard me" }))

	s.Cancel()

	assert.Empty(t, up.requests)
	assert.Equal(t, "Docs", s.Form().DisplayName)
}

func TestSession_CustomRules(t *testing.T) {
	rules := fieldmask.Rules{fieldmask.PrefixRule("all", fieldmask.KindCompositeWiden, "display_name", "description")}
	s, err := NewSession(fetchedKnowledgeBase(), &fakeUpdater{}, WithRules(rules))
	require.NoError(t, err)
	s.Enter()
	require.NoError(t, s.Edit(func(f *domain.Form) { f.DisplayName = "x" }))

	assert.Equal(t, []fieldmask.Path{domain.PathDescription}, s.Mask())
}

func TestSession_FormIsACopy(t *testing.T) {
	s := newSession(t, &fakeUpdater{})
	s.Enter()

	f := s.Form()
	require.NotEmpty(t, f.Indexer.ExactTopics)
	require.NotEmpty(t, f.Indexer.RegexPatterns)
	f.Indexer.ExactTopics[0] = "mutated"
	f.Indexer.RegexPatterns[0] = "mutated-.*"
	f.Indexer.ExactTopics = append(f.Indexer.ExactTopics, "extra")

	assert.False(t, s.HasChanges())
	assert.Empty(t, s.Mask())
	assert.Equal(t, []string{"orders"}, s.Form().Indexer.ExactTopics)
	assert.Equal(t, []string{"logs-.*"}, s.Form().Indexer.RegexPatterns)
}

func TestSession_TableEditRejected(t *testing.T) {
	up := &fakeUpdater{}
	s := newSession(t, up)
	s.Enter()

	err := s.Edit(func(f *domain.Form) {
		f.DisplayName = "Docs v2"
		f.VectorDatabase.Postgres.DSN = "postgres://b"
		f.VectorDatabase.Postgres.Table = "chunks_v2"
	})
	assert.ErrorIs(t, err, domain.ErrImmutableField)
	assert.False(t, s.HasChanges())
	assert.Equal(t, "Docs", s.Form().DisplayName)
	assert.Equal(t, "chunks", s.Form().VectorDatabase.Postgres.Table)

	// Without the table change the widened mask carries the DSN only.
	require.NoError(t, s.Edit(func(f *domain.Form) { f.VectorDatabase.Postgres.DSN = "postgres://b" }))
	assert.Equal(t, []fieldmask.Path{domain.PathVectorDatabaseDSN}, s.Mask())
}
