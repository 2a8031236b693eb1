package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/venturegate/validation-backend/internal/pkg/ctxutil"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

func newTestAuthService(t *testing.T, secret string, ttl time.Duration) AuthService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewAuthService(log, secret, ttl)
}

func TestIssueAndParseToken(t *testing.T) {
	svc := newTestAuthService(t, "test-secret", time.Hour)
	userID := uuid.New()
	tenantID := uuid.New()

	token, err := svc.IssueToken(userID, tenantID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("IssueToken returned empty token")
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		t.Fatal("request data missing from context")
	}
	if rd.UserID != userID {
		t.Errorf("UserID = %s, want %s", rd.UserID, userID)
	}
	if rd.TenantID != tenantID {
		t.Errorf("TenantID = %s, want %s", rd.TenantID, tenantID)
	}
}

func TestIssueTokenRejectsNilIDs(t *testing.T) {
	svc := newTestAuthService(t, "test-secret", time.Hour)
	if _, err := svc.IssueToken(uuid.Nil, uuid.New()); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("nil user: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.IssueToken(uuid.New(), uuid.Nil); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("nil tenant: err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	svc := newTestAuthService(t, "test-secret", time.Hour)
	userID := uuid.New()
	tenantID := uuid.New()
	token, err := svc.IssueToken(userID, tenantID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name  string
		svc   AuthService
		token string
	}{
		{"garbage", svc, "not-a-jwt"},
		{"empty", svc, ""},
		{"tampered", svc, token + "x"},
		{"wrong secret", newTestAuthService(t, "other-secret", time.Hour), token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.SetContextFromToken(context.Background(), tt.token); !stderrors.Is(err, errors.ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := newTestAuthService(t, "test-secret", -time.Minute)
	token, err := svc.IssueToken(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := svc.SetContextFromToken(context.Background(), token); !stderrors.Is(err, errors.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
