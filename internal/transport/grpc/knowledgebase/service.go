package knowledgebase

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "knowledgebase.v1.KnowledgeBaseService"

const (
	methodCreate = "/" + ServiceName + "/CreateKnowledgeBase"
	methodGet    = "/" + ServiceName + "/GetKnowledgeBase"
	methodUpdate = "/" + ServiceName + "/UpdateKnowledgeBase"
)

// Server is the server API for the knowledge-base service. Messages are
// google.protobuf.Struct documents; see mappers.go for their shape.
type Server interface {
	CreateKnowledgeBase(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetKnowledgeBase(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateKnowledgeBase(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler(fullMethod string, call func(Server, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(Server), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(Server), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for the knowledge-base service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateKnowledgeBase",
			Handler:    unaryHandler(methodCreate, Server.CreateKnowledgeBase),
		},
		{
			MethodName: "GetKnowledgeBase",
			Handler:    unaryHandler(methodGet, Server.GetKnowledgeBase),
		},
		{
			MethodName: "UpdateKnowledgeBase",
			Handler:    unaryHandler(methodUpdate, Server.UpdateKnowledgeBase),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "knowledgebase/v1/knowledge_base.proto",
}
