package knowledgebase

import (
	"fmt"

	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/dto"
	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/usecases/update_knowledge_base"
	"github.com/murkotick/knowledge-base-service/internal/pkg/fieldmask"
)

// Wire field names.
const (
	fieldID            = "id"
	fieldKnowledgeBase = "knowledge_base"
	fieldUpdateMask    = "update_mask"
	fieldPaths         = "paths"
)

func knowledgeBaseToStruct(kb *domain.KnowledgeBase) (*structpb.Struct, error) {
	doc, err := fieldmask.Document(kb)
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(doc)
}

func knowledgeBaseFromValue(v *structpb.Value) (*domain.KnowledgeBase, error) {
	obj := v.GetStructValue()
	if obj == nil {
		return nil, fmt.Errorf("%s must be an object", fieldKnowledgeBase)
	}
	var kb domain.KnowledgeBase
	if err := fieldmask.DecodeDocument(obj.AsMap(), &kb); err != nil {
		return nil, fmt.Errorf("decode %s: %w", fieldKnowledgeBase, err)
	}
	return &kb, nil
}

// encodeKnowledgeBaseReply builds {"knowledge_base": {...}}.
func encodeKnowledgeBaseReply(kb *domain.KnowledgeBase) (*structpb.Struct, error) {
	body, err := knowledgeBaseToStruct(kb)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldKnowledgeBase: structpb.NewStructValue(body),
	}}, nil
}

func decodeKnowledgeBaseReply(s *structpb.Struct) (*domain.KnowledgeBase, error) {
	v, ok := s.GetFields()[fieldKnowledgeBase]
	if !ok {
		return nil, nil
	}
	return knowledgeBaseFromValue(v)
}

func encodeIDRequest(id string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID: structpb.NewStringValue(id),
	}}
}

// EncodeUpdateRequest builds the wire form of req:
//
//	{"id": ..., "knowledge_base": {...}, "update_mask": {"paths": [...]}}
//
// update_mask is omitted when req carries no mask.
func EncodeUpdateRequest(req *dto.UpdateRequest) (*structpb.Struct, error) {
	out := encodeIDRequest(req.ID)
	if req.KnowledgeBase != nil {
		body, err := knowledgeBaseToStruct(req.KnowledgeBase)
		if err != nil {
			return nil, err
		}
		out.Fields[fieldKnowledgeBase] = structpb.NewStructValue(body)
	}
	if req.UpdateMask != nil {
		paths := make([]*structpb.Value, 0, len(req.UpdateMask.GetPaths()))
		for _, p := range req.UpdateMask.GetPaths() {
			paths = append(paths, structpb.NewStringValue(p))
		}
		out.Fields[fieldUpdateMask] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			fieldPaths: structpb.NewListValue(&structpb.ListValue{Values: paths}),
		}})
	}
	return out, nil
}

func decodeUpdateMask(v *structpb.Value) (*fieldmaskpb.FieldMask, error) {
	obj := v.GetStructValue()
	if obj == nil {
		return nil, fmt.Errorf("%s must be an object", fieldUpdateMask)
	}
	list, ok := obj.GetFields()[fieldPaths]
	if !ok {
		return &fieldmaskpb.FieldMask{}, nil
	}
	if list.GetListValue() == nil {
		return nil, fmt.Errorf("%s.%s must be a list", fieldUpdateMask, fieldPaths)
	}
	m := &fieldmaskpb.FieldMask{}
	for _, p := range list.GetListValue().GetValues() {
		s, ok := p.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%s.%s must contain strings", fieldUpdateMask, fieldPaths)
		}
		m.Paths = append(m.Paths, s.StringValue)
	}
	return m, nil
}

func mapUpdateRequest(s *structpb.Struct) (update_knowledge_base.Request, error) {
	req := update_knowledge_base.Request{ID: s.GetFields()[fieldID].GetStringValue()}

	if v, ok := s.GetFields()[fieldKnowledgeBase]; ok {
		kb, err := knowledgeBaseFromValue(v)
		if err != nil {
			return req, err
		}
		req.KnowledgeBase = kb
	}
	if v, ok := s.GetFields()[fieldUpdateMask]; ok {
		m, err := decodeUpdateMask(v)
		if err != nil {
			return req, err
		}
		req.Paths = fieldmask.FromFieldMask(m)
	}
	return req, nil
}
