package interceptors

import (
	"context"
	"log/slog"

	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// ErrorInterceptor turns handler errors into gRPC status errors whose message
// is safe to return to the caller. Unknown errors are logged in full.
func ErrorInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			return nil, handleGrpcError(logger, info.FullMethod, err)
		}
		return resp, nil
	}
}

func handleGrpcError(logger *slog.Logger, method string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := customerrors.GRPCCode(err)
	if customerrors.GetStatus(err) >= 500 {
		logger.Error("grpc handler failed", "method", method, "error", err)
	}

	return status.Error(code, customerrors.GetMessage(err))
}
