package knowledgebase

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/knowledge-base-service/internal/app/knowledgebase/domain"
)

// mapError translates domain sentinel errors into gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	if errors.Is(err, domain.ErrKnowledgeBaseNotFound) || errors.Is(err, spanner.ErrRowNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	switch {
	case errors.Is(err, domain.ErrMissingID),
		errors.Is(err, domain.ErrMissingResource),
		errors.Is(err, domain.ErrInvalidUpdateMask),
		errors.Is(err, domain.ErrImmutableField),
		errors.Is(err, domain.ErrEmptyDisplayName),
		errors.Is(err, domain.ErrDisplayNameTooLong),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrInvalidChunking),
		errors.Is(err, domain.ErrInvalidProvider):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
