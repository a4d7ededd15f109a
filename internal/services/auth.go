package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/luminakids/storyreel-backend/internal/data/repos"
	types "github.com/luminakids/storyreel-backend/internal/domain"
	"github.com/luminakids/storyreel-backend/internal/platform/ctxutil"
	"github.com/luminakids/storyreel-backend/internal/platform/dbctx"
	"github.com/luminakids/storyreel-backend/internal/platform/envutil"
	apperrors "github.com/luminakids/storyreel-backend/internal/platform/errors"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

type AuthService interface {
	Register(dbc dbctx.Context, email, password, name, role string) (*types.AdminUser, error)
	Login(dbc dbctx.Context, email, password string) (string, *types.AdminUser, error)
	// ValidateToken parses a bearer token and returns the actor it encodes.
	ValidateToken(token string) (*ctxutil.Actor, error)
}

type authClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	log    *logger.Logger
	admins repos.AdminUserRepo
	secret []byte
	ttl    time.Duration
}

func NewAuthService(baseLog *logger.Logger, admins repos.AdminUserRepo) (AuthService, error) {
	secret := envutil.Str("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET")
	}
	return &authService{
		log:    baseLog.With("service", "AuthService"),
		admins: admins,
		secret: []byte(secret),
		ttl:    envutil.Dur("JWT_TTL", 24*time.Hour),
	}, nil
}

func (s *authService) Register(dbc dbctx.Context, email, password, name, role string) (*types.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email required: %w", apperrors.ErrInvalidArgument)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", apperrors.ErrInvalidArgument)
	}
	if role == "" {
		role = "reviewer"
	}

	existing, err := s.admins.GetByEmail(dbc, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := &types.AdminUser{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(name),
		Role:     role,
	}
	created, err := s.admins.Create(dbc, []*types.AdminUser{row})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.log.Info("Admin registered", "admin_id", row.ID, "role", role)
	return created[0], nil
}

func (s *authService) Login(dbc dbctx.Context, email, password string) (string, *types.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row, err := s.admins.GetByEmail(dbc, email)
	if err != nil {
		return "", nil, err
	}
	if row == nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	now := time.Now()
	claims := authClaims{
		Email: row.Email,
		Role:  row.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   row.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, row, nil
}

func (s *authService) ValidateToken(token string) (*ctxutil.Actor, error) {
	var claims authClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", apperrors.ErrUnauthorized)
	}
	return &ctxutil.Actor{ID: id, Email: claims.Email, Role: claims.Role}, nil
}
