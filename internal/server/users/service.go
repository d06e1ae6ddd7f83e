package users

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/cryptox"
	"github.com/dmitrijs2005/adminapi/internal/server/auth"
	"github.com/dmitrijs2005/adminapi/internal/server/config"
	"github.com/dmitrijs2005/adminapi/internal/server/refreshtokens"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Permissions granted per role.
var rolePermissions = map[string][]string{
	RoleAdmin: {"user:list", "user:view", "user:create", "user:update", "user:delete"},
	"viewer":  {"user:list", "user:view"},
}

type Service struct {
	repo                         Repository
	refreshTokenRepo             refreshtokens.Repository
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewService(repo Repository, refreshTokenRepo refreshtokens.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

func (s *Service) getRandomSalt() []byte {
	return common.GenerateRandByteArray(32)
}

func (s *Service) makeVerifier(password string, salt []byte) []byte {
	return cryptox.DeriveKey([]byte(password), salt)
}

func (s *Service) checkVerifier(verifier []byte, verifierCandidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, verifierCandidate) == 1
}

// Create adds an enabled account with the given password.
func (s *Service) Create(ctx context.Context, user *User, password string) (*User, error) {
	if user.UserName == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrInvalidPassword)
	}

	user.Salt = s.getRandomSalt()
	user.Verifier = s.makeVerifier(password, user.Salt)
	user.Status = StatusEnabled
	user.CreatedAt = s.now()

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	id := auth.Identity{UserID: user.ID, Username: user.UserName, Roles: user.Roles}
	return auth.GenerateToken(id, s.jwtSecret, s.accessTokenValidityDuration, s.now())
}

func (s *Service) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *Service) Login(ctx context.Context, userName string, password string) (*User, *TokenPair, error) {

	user, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if !s.checkVerifier(user.Verifier, s.makeVerifier(password, user.Salt)) {
		return nil, nil, common.ErrorUnauthorized
	}

	if user.Status != StatusEnabled {
		return nil, nil, common.ErrorForbidden
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	err = s.refreshTokenRepo.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresIn: s.accessTokenValidityDuration}, nil
}

// Refresh issues a new access token for a live refresh token. The refresh
// token itself stays valid.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.refreshTokenRepo.Find(ctx, refreshToken)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresIn: s.accessTokenValidityDuration}, nil
}

// Logout revokes every refresh token of the user.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.refreshTokenRepo.DeleteByUser(ctx, userID)
}

// Authenticate resolves a bearer access token to the current account.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repo.Get(ctx, claims.UserID)
	if err != nil || user.Status != StatusEnabled {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

func (s *Service) Permissions(user *User) []string {
	seen := map[string]bool{}
	var out []string
	for _, role := range user.Roles {
		for _, p := range rolePermissions[role] {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

// List returns page pageNum (1-based) of size pageSize.
func (s *Service) List(ctx context.Context, f Filter, pageNum, pageSize int) ([]User, int, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return s.repo.List(ctx, f, (pageNum-1)*pageSize, pageSize)
}

func (s *Service) Update(ctx context.Context, id string, c Changes) (*User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.UserName != "" {
		user.UserName = c.UserName
	}
	if c.Password != "" {
		user.Salt = s.getRandomSalt()
		user.Verifier = s.makeVerifier(c.Password, user.Salt)
	}
	if c.Email != "" {
		user.Email = c.Email
	}
	if c.Phone != "" {
		user.Phone = c.Phone
	}
	if c.Avatar != "" {
		user.Avatar = c.Avatar
	}
	if c.Roles != nil {
		user.Roles = c.Roles
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.refreshTokenRepo.DeleteByUser(ctx, id)
}
