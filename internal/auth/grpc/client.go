package grpc

import (
	"context"

	"github.com/taekwondodev/ledger-auth/internal/dto"
	"google.golang.org/grpc"
)

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) Login(ctx context.Context, req *dto.LoginRequest, opts ...grpc.CallOption) (*dto.LoginResponse, error) {
	out := new(dto.LoginResponse)
	if err := c.invoke(ctx, LoginMethod, req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest, opts ...grpc.CallOption) (*dto.RegisterResponse, error) {
	out := new(dto.RegisterResponse)
	if err := c.invoke(ctx, RegisterMethod, req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Validate(ctx context.Context, req *dto.ValidateTokenRequest, opts ...grpc.CallOption) (*dto.ValidateTokenResponse, error) {
	out := new(dto.ValidateTokenResponse)
	if err := c.invoke(ctx, ValidateMethod, req, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.conn.Invoke(ctx, method, in, out, opts...)
}
