package directory

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Errors leaving this package carry a gRPC status code so that transports can
// tell caller mistakes (InvalidArgument), absent entities (NotFound) and
// load failures (Internal) apart.

func invalidArgument(format string, args ...any) error {
	return status.Errorf(codes.InvalidArgument, format, args...)
}

func notFound(format string, args ...any) error {
	return status.Errorf(codes.NotFound, format, args...)
}

func internal(what string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(codes.Internal, "%s: %v", what, err)
}
