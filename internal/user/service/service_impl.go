package service

import (
	"context"
	"strings"
	"time"

	"github.com/btcforcorps/orangepages/internal/auth/password"
	"github.com/bwmarrin/snowflake"
	userdomain "github.com/btcforcorps/orangepages/internal/user/domain"
	"github.com/btcforcorps/orangepages/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Users repository.Repository[userdomain.User]
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	users repository.Repository[userdomain.User]
}

func New(p Params) userdomain.Service {
	return &Service{
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		users: p.Users,
	}
}

func (s *Service) Register(ctx context.Context, req userdomain.RegisterRequest) (*userdomain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, userdomain.ErrInvalidEmail
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, userdomain.ErrInvalidName
	}
	if len(req.Password) < 8 {
		return nil, userdomain.ErrInvalidPassword
	}

	existing, err := s.users.FindOne(ctx, &userdomain.User{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, userdomain.ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, email, plainPassword string) (*userdomain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, userdomain.ErrBadCredentials
	}
	user, err := s.users.FindOne(ctx, &userdomain.User{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(plainPassword, user.PasswordHash) {
		return nil, userdomain.ErrBadCredentials
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*userdomain.User, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil {
		return nil, userdomain.ErrUserNotFound
	}
	user, err := s.users.FindOne(ctx, &userdomain.User{ID: id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, userdomain.ErrInvalidEmail
	}
	user, err := s.users.FindOne(ctx, &userdomain.User{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, userdomain.ErrUserNotFound
	}
	return user, nil
}
