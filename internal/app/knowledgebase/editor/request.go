package editor

import (
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

// BuildUpdateRequest combines the complete edited resource with its mask.
// An empty mask leaves UpdateMask unset, which the server treats as "replace
// nothing" rather than a full overwrite.
func BuildUpdateRequest(id string, kb *domain.KnowledgeBase, mask []fieldmask.Path) (*dto.UpdateRequest, error) {
	if id == "" {
		return nil, domain.ErrMissingID
	}
	if kb == nil {
		return nil, domain.ErrMissingResource
	}

	resource := *kb
	resource.ID = id
	return &dto.UpdateRequest{
		ID:            id,
		KnowledgeBase: &resource,
		UpdateMask:    fieldmask.ToFieldMask(mask),
	}, nil
}
