package get_knowledge_base

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	json "github.com/goccy/go-json"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
	"github.com/murkotick/knowledge-base-service/internal/models/m_knowledge_base"
	commitplan "github.com/murkotick/knowledge-base-service/internal/pkg/committer"
)

// SpannerGetKnowledgeBaseQuery reads a knowledge base row from Spanner.
type SpannerGetKnowledgeBaseQuery struct {
	Client *spanner.Client
}

func NewSpannerGetKnowledgeBaseQuery(client *spanner.Client) *SpannerGetKnowledgeBaseQuery {
	return &SpannerGetKnowledgeBaseQuery{Client: client}
}

var selectSQL = fmt.Sprintf("SELECT %s FROM %s WHERE %s = @id",
	strings.Join(m_knowledge_base.Columns, ", "), m_knowledge_base.TableName, m_knowledge_base.ColKnowledgeBaseID)

func (q *SpannerGetKnowledgeBaseQuery) GetKnowledgeBase(ctx context.Context, id string) (*dto.KnowledgeBaseDTO, error) {
	stmt := spanner.Statement{
		SQL:    selectSQL,
		Params: map[string]interface{}{"id": id},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrKnowledgeBaseNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeRow(row)
}

// GetKnowledgeBaseForUpdate reads the row through txn so that Spanner locks it
// until the transaction commits.
func (q *SpannerGetKnowledgeBaseQuery) GetKnowledgeBaseForUpdate(ctx context.Context, txn commitplan.Txn, id string) (*dto.KnowledgeBaseDTO, error) {
	row, err := txn.ReadRow(ctx, m_knowledge_base.TableName, spanner.Key{id}, m_knowledge_base.Columns)
	if errors.Is(err, spanner.ErrRowNotFound) || spanner.ErrCode(err) == codes.NotFound {
		return nil, domain.ErrKnowledgeBaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeRow(row)
}

// decodeRow expects the columns in m_knowledge_base.Columns order.
func decodeRow(row *spanner.Row) (*dto.KnowledgeBaseDTO, error) {
	var (
		kbID, displayName, description, configJSON string
		tagsJSON                                   spanner.NullString
		createdAt, updatedAt                       time.Time
	)
	if err := row.Columns(&kbID, &displayName, &description, &tagsJSON, &configJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	out := &dto.KnowledgeBaseDTO{
		KnowledgeBaseID: kbID,
		DisplayName:     displayName,
		Description:     description,
		ConfigJSON:      configJSON,
		CreatedAt:       createdAt.UTC(),
		UpdatedAt:       updatedAt.UTC(),
	}
	if tagsJSON.Valid && tagsJSON.StringVal != "" {
		if err := json.Unmarshal([]byte(tagsJSON.StringVal), &out.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of knowledge base %s: %w", kbID, err)
		}
	}
	return out, nil
}
