package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/venturegate/validation-backend/internal/pkg/ctxutil"
	"github.com/venturegate/validation-backend/internal/pkg/errors"
	"github.com/venturegate/validation-backend/internal/pkg/logger"
)

// AuthService validates bearer tokens and stamps the authenticated identity
// into the request context. Tokens are stateless HS256 JWTs carrying the user
// and tenant IDs; identity storage is upstream.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	IssueToken(userID, tenantID uuid.UUID) (string, error)
}

type authService struct {
	log          *logger.Logger
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(baseLog *logger.Logger, jwtSecretKey string, accessTTL time.Duration) AuthService {
	return &authService{
		log:          baseLog.With("service", "AuthService"),
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

type accessClaims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, errors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return ctx, errors.ErrUnauthorized
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil || tenantID == uuid.Nil {
		return ctx, errors.ErrUnauthorized
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:   userID,
		TenantID: tenantID,
	}), nil
}

func (as *authService) IssueToken(userID, tenantID uuid.UUID) (string, error) {
	if userID == uuid.Nil || tenantID == uuid.Nil {
		return "", errors.ErrInvalidArgument
	}
	now := time.Now()
	claims := &accessClaims{
		TenantID: tenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
