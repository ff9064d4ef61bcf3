package knowledgebase

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/queries/get_knowledge_base"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/create_knowledge_base"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/update_knowledge_base"
)

// Commands groups write interactors.
type Commands struct {
	Create *create_knowledge_base.Interactor
	Update *update_knowledge_base.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get *get_knowledge_base.Handler
}

// Handler is a thin gRPC transport adapter.
// It validates input, maps wire documents to application requests and
// delegates to the CQRS handlers.
type Handler struct {
	commands Commands
	queries  Queries
}

var _ Server = (*Handler)(nil)

func NewHandler(cmd Commands, qry Queries) *Handler {
	return &Handler{commands: cmd, queries: qry}
}

func (h *Handler) CreateKnowledgeBase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateCreate(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	kb, err := knowledgeBaseFromValue(req.GetFields()[fieldKnowledgeBase])
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := h.commands.Create.Execute(ctx, create_knowledge_base.Request{KnowledgeBase: *kb})
	if err != nil {
		return nil, mapError(err)
	}
	return reply(encodeKnowledgeBaseReply(out))
}

func (h *Handler) GetKnowledgeBase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := h.queries.Get.Execute(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(encodeKnowledgeBaseReply(out))
}

// UpdateKnowledgeBase applies the fields named by update_mask. A missing or
// empty mask changes nothing and returns the stored resource.
func (h *Handler) UpdateKnowledgeBase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := validateUpdate(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	appReq, err := mapUpdateRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	out, err := h.commands.Update.Execute(ctx, appReq)
	if err != nil {
		return nil, mapError(err)
	}
	return reply(encodeKnowledgeBaseReply(out))
}

func reply(s *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}
