package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req:  RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"},
		},
		{
			name:    "missing username",
			req:     RegisterRequest{Email: "a@x.com", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "missing email",
			req:     RegisterRequest{Username: "alice", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "missing password",
			req:     RegisterRequest{Username: "alice", Email: "a@x.com"},
			wantErr: true,
		},
		{
			name:    "malformed email",
			req:     RegisterRequest{Username: "alice", Email: "alice-at-x", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "username too long",
			req:     RegisterRequest{Username: strings.Repeat("a", 101), Email: "a@x.com", Password: "secret1"},
			wantErr: true,
		},
		{
			name: "username at limit",
			req:  RegisterRequest{Username: strings.Repeat("a", 100), Email: "a@x.com", Password: "secret1"},
		},
		{
			name:    "email too long",
			req:     RegisterRequest{Username: "alice", Email: strings.Repeat("a", 250) + "@x.com", Password: "secret1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
