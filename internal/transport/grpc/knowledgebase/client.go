package knowledgebase

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/contracts"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
)

// Client calls the knowledge-base service over a gRPC connection. It
// satisfies contracts.Updater, so an edit session can save through it.
// Errors are returned as produced by grpc, with their status intact.
type Client struct {
	cc grpc.ClientConnInterface
}

var _ contracts.Updater = (*Client)(nil)

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Create(ctx context.Context, kb *domain.KnowledgeBase) (*domain.KnowledgeBase, error) {
	body, err := knowledgeBaseToStruct(kb)
	if err != nil {
		return nil, err
	}
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldKnowledgeBase: structpb.NewStructValue(body),
	}}
	return c.invoke(ctx, methodCreate, in)
}

func (c *Client) Get(ctx context.Context, id string) (*domain.KnowledgeBase, error) {
	return c.invoke(ctx, methodGet, encodeIDRequest(id))
}

func (c *Client) Update(ctx context.Context, req *dto.UpdateRequest) (*domain.KnowledgeBase, error) {
	in, err := EncodeUpdateRequest(req)
	if err != nil {
		return nil, err
	}
	return c.invoke(ctx, methodUpdate, in)
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct) (*domain.KnowledgeBase, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return decodeKnowledgeBaseReply(out)
}
