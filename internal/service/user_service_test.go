package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"snsproject/internal/models"
	"snsproject/internal/repository"
	"snsproject/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

// recordingHasher remembers every hash Compare is asked to check.
type recordingHasher struct {
	PasswordHasher
	compared []string
}

func (h *recordingHasher) Compare(hash, password string) (bool, error) {
	h.compared = append(h.compared, hash)
	return h.PasswordHasher.Compare(hash, password)
}

func newTestUserService(users *userRepoStub) *UserService {
	uow := newStubUnitOfWork(users, postsHolding(), noopLikeRepo(), noopCommentRepo())
	return NewUserService(uow, security.NewPasswordHasher(4), security.NewTokenIssuer(testSecret, "snsproject-api", time.Hour))
}

func TestUserService_Join(t *testing.T) {
	t.Run("blank input", func(t *testing.T) {
		svc := newTestUserService(usersNamed())

		_, err := svc.Join(context.Background(), "  ", "pw")
		assertCode(t, err, models.CodeValidation)

		_, err = svc.Join(context.Background(), "alice", "")
		assertCode(t, err, models.CodeValidation)
	})

	t.Run("duplicated name", func(t *testing.T) {
		users := usersNamed(alice)
		users.createFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("a duplicated user must not be stored")
			return nil
		}
		svc := newTestUserService(users)

		_, err := svc.Join(context.Background(), "alice", "pw")
		assertCode(t, err, models.CodeDuplicatedUserName)
	})

	t.Run("duplicated name detected by the store", func(t *testing.T) {
		users := usersNamed()
		users.createFn = func(_ context.Context, _ *models.User) error { return repository.ErrDuplicateKey }
		svc := newTestUserService(users)

		_, err := svc.Join(context.Background(), "alice", "pw")
		assertCode(t, err, models.CodeDuplicatedUserName)
	})

	t.Run("stores a hashed password", func(t *testing.T) {
		var stored *models.User
		users := usersNamed()
		users.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 5
			stored = u
			return nil
		}
		svc := newTestUserService(users)

		view, err := svc.Join(context.Background(), "carol", "pw")
		require.NoError(t, err)
		assert.Equal(t, uint(5), view.ID)
		assert.Equal(t, "carol", view.UserName)
		assert.Equal(t, models.RoleUser, view.Role)

		require.NotNil(t, stored)
		assert.NotEqual(t, "pw", stored.Password)
		ok, err := security.NewPasswordHasher(4).Compare(stored.Password, "pw")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestUserService_Login(t *testing.T) {
	hash, err := security.NewPasswordHasher(4).Hash("pw")
	require.NoError(t, err)
	dave := &models.User{ID: 4, UserName: "dave", Password: hash}

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestUserService(usersNamed(dave))

		_, err := svc.Login(context.Background(), "ghost", "pw")
		assertCode(t, err, models.CodeUserNotFound)
	})

	t.Run("unknown user still pays a password comparison", func(t *testing.T) {
		hasher := &recordingHasher{PasswordHasher: security.NewPasswordHasher(4)}
		uow := newStubUnitOfWork(usersNamed(dave), postsHolding(), noopLikeRepo(), noopCommentRepo())
		svc := NewUserService(uow, hasher, security.NewTokenIssuer(testSecret, "snsproject-api", time.Hour))

		_, err := svc.Login(context.Background(), "ghost", "pw")
		assertCode(t, err, models.CodeUserNotFound)
		require.Len(t, hasher.compared, 1)
		assert.NotEmpty(t, hasher.compared[0])
		assert.NotEqual(t, dave.Password, hasher.compared[0])

		_, err = svc.Login(context.Background(), "dave", "nope")
		assertCode(t, err, models.CodeInvalidPassword)
		require.Len(t, hasher.compared, 2)
		assert.Equal(t, dave.Password, hasher.compared[1])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestUserService(usersNamed(dave))

		_, err := svc.Login(context.Background(), "dave", "nope")
		assertCode(t, err, models.CodeInvalidPassword)
	})

	t.Run("issues a token for the user", func(t *testing.T) {
		svc := newTestUserService(usersNamed(dave))

		token, err := svc.Login(context.Background(), "dave", "pw")
		require.NoError(t, err)

		claims, err := security.NewTokenIssuer(testSecret, "snsproject-api", time.Hour).Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "dave", claims.UserName)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, dave.ID, id)
	})

	t.Run("store failure", func(t *testing.T) {
		users := usersNamed()
		users.findByUserNameFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, models.NewInternalError(errors.New("db down"))
		}
		svc := newTestUserService(users)

		_, err := svc.Login(context.Background(), "dave", "pw")
		assertCode(t, err, models.CodeInternal)
	})
}

func TestUserService_LoadUserByUserName(t *testing.T) {
	svc := newTestUserService(usersNamed(alice))

	view, err := svc.LoadUserByUserName(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, view.ID)

	_, err = svc.LoadUserByUserName(context.Background(), "ghost")
	assertCode(t, err, models.CodeUserNotFound)
}
