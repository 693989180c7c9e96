package grpc

import (
	"context"

	"github.com/taekwondodev/ledger-auth/internal/dto"
	"google.golang.org/grpc"
)

const ServiceName = "ledger.auth.v1.AuthService"

const (
	LoginMethod    = "/" + ServiceName + "/Login"
	RegisterMethod = "/" + ServiceName + "/Register"
	ValidateMethod = "/" + ServiceName + "/Validate"
)

type AuthServiceServer interface {
	Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(context.Context, *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Validate(context.Context, *dto.ValidateTokenRequest) (*dto.ValidateTokenResponse, error)
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unaryHandler(LoginMethod, AuthServiceServer.Login)},
		{MethodName: "Register", Handler: unaryHandler(RegisterMethod, AuthServiceServer.Register)},
		{MethodName: "Validate", Handler: unaryHandler(ValidateMethod, AuthServiceServer.Validate)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func unaryHandler[Req, Res any](
	fullMethod string,
	call func(AuthServiceServer, context.Context, *Req) (*Res, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		server := srv.(AuthServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req))
		})
	}
}
