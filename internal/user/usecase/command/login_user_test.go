package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomlabs/stockroom/internal/user/domain"
	"github.com/stockroomlabs/stockroom/pkg/auth"
)

// fakeUserRepo is a minimal in-memory UserRepository for handler tests
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUsernameExists
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error { return nil }
func (r *fakeUserRepo) Delete(id uint) error           { return nil }
func (r *fakeUserRepo) Count() (int64, error)          { return int64(len(r.users)), nil }

func TestRegisterAndLogin_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()

	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "alice",
		Password: "sekret1",
		FullName: "Alice Example",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "sekret1", user.Password)

	response, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "alice",
		Password: "sekret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.Token)

	claims, err := auth.ValidateToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	_, err := NewRegisterUserHandler(newFakeUserRepo()).Handle(RegisterUserCommand{
		Username: "alice",
		Password: "short",
	})
	assert.Error(t, err)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	cmd := RegisterUserCommand{Username: "alice", Password: "sekret1"}
	_, err := handler.Handle(cmd)
	require.NoError(t, err)

	_, err = handler.Handle(cmd)
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{Username: "alice", Password: "sekret1"})
	require.NoError(t, err)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "alice", Password: "wrong"})
	assert.Error(t, err)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{Username: "alice", Password: "sekret1"})
	require.NoError(t, err)
	user.IsActive = false

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "alice", Password: "sekret1"})
	assert.Error(t, err)
}
