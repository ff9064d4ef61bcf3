package dto

import (
	"time"

	"google.golang.org/protobuf/types/known/fieldmaskpb"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
)

// UpdateRequest is the payload handed to the knowledge-base update RPC. It
// always carries the complete edited resource; UpdateMask tells the server
// which fields to apply. A nil UpdateMask means "apply nothing".
type UpdateRequest struct {
	ID            string
	KnowledgeBase *domain.KnowledgeBase
	UpdateMask    *fieldmaskpb.FieldMask
}

// KnowledgeBaseDTO is a stored knowledge base as returned by the read model.
// ConfigJSON is the raw persisted pipeline configuration document.
type KnowledgeBaseDTO struct {
	KnowledgeBaseID string
	DisplayName     string
	Description     string
	Tags            map[string]string
	ConfigJSON      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
