package knowledgebase

import (
	"errors"

	"google.golang.org/protobuf/types/known/structpb"
)

var errRequestRequired = errors.New("request is required")

func requireID(req *structpb.Struct) (string, error) {
	if req == nil {
		return "", errRequestRequired
	}
	id := req.GetFields()[fieldID].GetStringValue()
	if id == "" {
		return "", errors.New("id is required")
	}
	return id, nil
}

func validateCreate(req *structpb.Struct) error {
	if req == nil {
		return errRequestRequired
	}
	if _, ok := req.GetFields()[fieldKnowledgeBase]; !ok {
		return errors.New("knowledge_base is required")
	}
	return nil
}

func validateUpdate(req *structpb.Struct) error {
	_, err := requireID(req)
	return err
}
