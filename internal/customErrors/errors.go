package customerrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

var (
	ErrUserAlreadyExists    = &Error{Code: http.StatusConflict, Message: "username or email already exists"}
	ErrUserNotFound         = &Error{Code: http.StatusNotFound, Message: "user not found"}
	ErrUnauthorized         = &Error{Code: http.StatusUnauthorized, Message: "authentication required"}
	ErrHttpMethodNotAllowed = &Error{Code: http.StatusMethodNotAllowed, Message: "http method not allowed"}
	ErrBadRequest           = &Error{Code: http.StatusBadRequest, Message: "bad request"}
	ErrInternalServer       = &Error{Code: http.StatusInternalServerError, Message: "internal server error"}
	ErrDbUnreacheable       = &Error{Code: http.StatusServiceUnavailable, Message: "database unreachable"}
	ErrDbSSLHandshakeFailed = &Error{Code: http.StatusBadGateway, Message: "database SSL handshake failed"}
	ErrDbTimeout            = &Error{Code: http.StatusGatewayTimeout, Message: "database timeout"}
)

func GetStatus(err error) int {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	switch {
	case errors.Is(err, jwt.ErrSignatureInvalid), errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetMessage returns a message safe to hand to a client. Errors that are not
// an *Error never leak their text.
func GetMessage(err error) string {
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	if GetStatus(err) == http.StatusUnauthorized {
		return ErrUnauthorized.Message
	}
	return ErrInternalServer.Message
}

func GRPCCode(err error) codes.Code {
	switch GetStatus(err) {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.AlreadyExists
	case http.StatusMethodNotAllowed:
		return codes.Unimplemented
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}
