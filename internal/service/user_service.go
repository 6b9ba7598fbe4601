package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"snsproject/internal/models"
	"snsproject/internal/observability"
	"snsproject/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// UserService registers users and authenticates them.
type UserService struct {
	uow    repository.UnitOfWork
	hasher PasswordHasher
	tokens TokenIssuer

	// decoyHash is compared against on unknown user names so a failed
	// login costs the same whether or not the account exists.
	decoyOnce sync.Once
	decoyHash string
}

func NewUserService(uow repository.UnitOfWork, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{uow: uow, hasher: hasher, tokens: tokens}
}

// Join registers userName with a hashed password and returns the new account.
func (s *UserService) Join(ctx context.Context, userName, password string) (_ *models.UserView, err error) {
	ctx, end := startOp(ctx, "user.join", attribute.String("user_name", userName))
	defer func() { end(err) }()

	if strings.TrimSpace(userName) == "" {
		return nil, models.NewValidationError("user name is required")
	}
	if password == "" {
		return nil, models.NewValidationError("password is required")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var view models.UserView
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		exists, err := st.Users.ExistsByUserName(ctx, userName)
		if err != nil {
			return err
		}
		if exists {
			return models.NewDuplicatedUserNameError(userName)
		}
		user := &models.User{UserName: userName, Password: hashed, Role: models.RoleUser}
		if err := st.Users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return models.NewDuplicatedUserNameError(userName)
			}
			return err
		}
		view = models.NewUserView(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Login checks the credentials of userName and returns a signed access token.
func (s *UserService) Login(ctx context.Context, userName, password string) (_ string, err error) {
	ctx, end := startOp(ctx, "user.login", attribute.String("user_name", userName))
	defer func() { end(err) }()

	var user *models.User
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		var err error
		user, err = st.Users.FindByUserName(ctx, userName)
		return err
	})
	if err != nil {
		if models.HasCode(err, models.CodeUserNotFound) {
			_, _ = s.hasher.Compare(s.decoy(), password)
		}
		return "", err
	}

	ok, err := s.hasher.Compare(user.Password, password)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if !ok {
		return "", models.NewInvalidPasswordError()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

func (s *UserService) decoy() string {
	s.decoyOnce.Do(func() {
		hashed, err := s.hasher.Hash("snsproject-decoy-password")
		if err != nil {
			observability.Logger.Error("failed to prepare decoy password hash", "error", err)
			return
		}
		s.decoyHash = hashed
	})
	return s.decoyHash
}

// LoadUserByUserName resolves an authenticated actor.
func (s *UserService) LoadUserByUserName(ctx context.Context, userName string) (_ *models.UserView, err error) {
	ctx, end := startOp(ctx, "user.load", attribute.String("user_name", userName))
	defer func() { end(err) }()

	var view models.UserView
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		user, err := st.Users.FindByUserName(ctx, userName)
		if err != nil {
			return err
		}
		view = models.NewUserView(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
