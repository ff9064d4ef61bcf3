package shared

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
)

// KnowledgeBaseFromDTO decodes a stored row into the wire resource.
func KnowledgeBaseFromDTO(in *dto.KnowledgeBaseDTO) (*domain.KnowledgeBase, error) {
	kb := &domain.KnowledgeBase{
		ID:          in.KnowledgeBaseID,
		DisplayName: in.DisplayName,
		Description: in.Description,
		Tags:        in.Tags,
	}
	if in.ConfigJSON != "" {
		if err := json.Unmarshal([]byte(in.ConfigJSON), &kb.Config); err != nil {
			return nil, fmt.Errorf("decode config of knowledge base %s: %w", in.KnowledgeBaseID, err)
		}
	}
	return kb, nil
}

// EntityFromDTO rebuilds the aggregate from a stored row.
func EntityFromDTO(in *dto.KnowledgeBaseDTO) (*domain.Entity, error) {
	kb, err := KnowledgeBaseFromDTO(in)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructEntity(*kb, in.CreatedAt, in.UpdatedAt), nil
}
