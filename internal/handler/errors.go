// internal/handler/errors.go
package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/SyedDaiam9101/hmm-service/internal/hmm"
	"github.com/SyedDaiam9101/hmm-service/internal/inference"
)

// grpcError maps engine errors to appropriate gRPC status errors
func grpcError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())

	// Bad observations are the caller's fault.
	case errors.Is(err, hmm.ErrEmptySequence),
		errors.Is(err, hmm.ErrUnknownObservation),
		errors.Is(err, inference.ErrInvalidInput):
		return status.Errorf(codes.InvalidArgument, "invalid observations: %v", err)

	// A model that cannot answer is a deployment defect.
	case errors.Is(err, hmm.ErrNoStates),
		errors.Is(err, hmm.ErrDuplicateState),
		errors.Is(err, hmm.ErrPseudoState),
		errors.Is(err, hmm.ErrMissingTransition),
		errors.Is(err, hmm.ErrMissingEmission),
		errors.Is(err, hmm.ErrInvalidProbability),
		errors.Is(err, hmm.ErrUnknownState):
		return status.Errorf(codes.FailedPrecondition, "model defect: %v", err)

	default:
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}

// invalidArgumentError creates an InvalidArgument gRPC error
func invalidArgumentError(format string, args ...interface{}) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}

// failedPreconditionError creates a FailedPrecondition gRPC error
func failedPreconditionError(format string, args ...interface{}) error {
	return status.Errorf(codes.FailedPrecondition, format, args...)
}
