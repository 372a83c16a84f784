package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SanjayChandraSamudrala/forum-board/dto"
	"github.com/SanjayChandraSamudrala/forum-board/internal/models"
	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
	"github.com/SanjayChandraSamudrala/forum-board/pkg/logger"
)

// Claims is the JWT payload. The session id ties the token to a server-side
// session so logout and idle expiry take effect before the token expires.
type Claims struct {
	UID  string `json:"uid"`
	SID  string `json:"sid"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users       repository.UserRepository
	Sessions    repository.SessionRepository
	Secret      []byte
	TokenTTL    time.Duration
	IdleTimeout time.Duration
	Now         func() time.Time
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, secret string, tokenTTL, idle time.Duration) *AuthService {
	return &AuthService{
		Users:       users,
		Sessions:    sessions,
		Secret:      []byte(secret),
		TokenTTL:    tokenTTL,
		IdleTimeout: idle,
		Now:         time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterReq) (dto.AuthResp, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResp{}, err
	}
	now := s.Now().UTC()
	u := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Bookmarks:    []models.Bookmark{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.AuthResp{}, fail(ErrConflict, "a user with this email already exists")
		}
		return dto.AuthResp{}, err
	}
	return s.issue(ctx, u)
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginReq) (dto.AuthResp, error) {
	u, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AuthResp{}, fail(ErrUnauthorized, "invalid email or password")
		}
		return dto.AuthResp{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return dto.AuthResp{}, fail(ErrUnauthorized, "invalid email or password")
	}
	return s.issue(ctx, u)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

// Authenticate verifies a bearer token, checks its session is still live and
// slides the session's idle deadline.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, fail(ErrUnauthorized, "invalid token")
	}
	if claims.UID == "" || claims.SID == "" {
		return nil, fail(ErrUnauthorized, "invalid token")
	}

	sess, err := s.Sessions.Get(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fail(ErrUnauthorized, "session expired")
		}
		return nil, err
	}
	now := s.Now()
	if sess.UserID != claims.UID || sess.Expired(now) {
		return nil, fail(ErrUnauthorized, "session expired")
	}

	sess.Touch(now, s.IdleTimeout)
	if err := s.Sessions.Touch(ctx, sess); err != nil {
		return nil, err
	}
	if uid, err := bson.ObjectIDFromHex(sess.UserID); err == nil {
		if err := s.Users.TouchLastActive(ctx, uid, now.UTC()); err != nil && !errors.Is(err, repository.ErrNotFound) {
			logger.L().Warn("last active update failed", zap.String("user_id", sess.UserID), zap.Error(err))
		}
	}
	return sess, nil
}

func (s *AuthService) Me(ctx context.Context, userID bson.ObjectID) (dto.UserResp, error) {
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return dto.UserResp{}, fromRepo(err, "user")
	}
	return dto.NewUserResp(u), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID bson.ObjectID, req dto.UpdateProfileReq) (dto.UserResp, error) {
	set := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return dto.UserResp{}, fail(ErrInvalidInput, "name cannot be empty")
		}
		set["name"] = name
	}
	if req.Bio != nil {
		set["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.Image != nil {
		set["image"] = strings.TrimSpace(*req.Image)
	}
	if len(set) == 0 {
		return s.Me(ctx, userID)
	}
	u, err := s.Users.UpdateProfile(ctx, userID, set)
	if err != nil {
		return dto.UserResp{}, fromRepo(err, "user")
	}
	return dto.NewUserResp(u), nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID bson.ObjectID, req dto.ChangePasswordReq) error {
	u, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return fromRepo(err, "user")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return fail(ErrInvalidInput, "current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return fromRepo(s.Users.SetPassword(ctx, userID, string(hash)), "user")
}

func (s *AuthService) issue(ctx context.Context, u *models.User) (dto.AuthResp, error) {
	now := s.Now()
	sess := &models.Session{
		ID:             uuid.NewString(),
		UserID:         u.ID.Hex(),
		Role:           u.Role,
		CreatedAt:      now,
		TokenExpiresAt: now.Add(s.TokenTTL),
	}
	sess.Touch(now, s.IdleTimeout)
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return dto.AuthResp{}, err
	}

	claims := Claims{
		UID:  sess.UserID,
		SID:  sess.ID,
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.TokenExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return dto.AuthResp{}, err
	}
	return dto.AuthResp{Token: token, ExpiresAt: sess.TokenExpiresAt, User: dto.NewUserResp(u)}, nil
}
