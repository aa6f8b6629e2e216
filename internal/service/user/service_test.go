package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	userrepo "storefront/internal/repository/user"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, domain.ErrAlreadyExists
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("u%d", f.nextID)
	u.CreatedAt = time.Now()
	f.users[u.ID] = &u
	clone := u
	return &clone, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, in userrepo.UpdateInput) (*domain.User, error) {
	u, ok := f.users[in.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Name = in.Name
	u.Email = in.Email
	u.PasswordHash = in.PasswordHash
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := f.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (f *fakeTokenRepo) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeTokenRepo) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	return New(users, tokens, nil), users, tokens
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _, _ := newTestService()

	u, token, err := svc.Register(context.Background(), RegisterInput{
		Name: "Alice", Email: "Alice@Example.com", Password: "sup3rsecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, domain.RoleCustomer, u.Role)
	require.NotEqual(t, "sup3rsecret", u.PasswordHash)

	got, err := svc.LookupByToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "", Password: "longenough"})
	require.Error(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{Name: "", Email: "a@b.com", Password: "longenough"})
	require.Error(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "short"})
	require.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "longenough"})
	require.NoError(t, err)
	_, _, err = svc.Register(context.Background(), RegisterInput{Name: "B", Email: "a@b.com", Password: "longenough"})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()
	_, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "longenough"})
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "a@b.com", "longenough")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "a@b.com", u.Email)

	_, _, err = svc.Login(context.Background(), "a@b.com", "wrongpass1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "ghost@b.com", "longenough")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLookupByTokenRejectsExpired(t *testing.T) {
	svc, _, tokens := newTestService()
	u, token, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "longenough"})
	require.NoError(t, err)

	stored := tokens.tokens[token]
	stored.ExpiresAt = time.Now().Add(-time.Minute)
	tokens.tokens[token] = stored

	_, err = svc.LookupByToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.NotEmpty(t, u.ID)
}

func TestLookupByTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.LookupByToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfileKeepsOmittedFields(t *testing.T) {
	svc, _, _ := newTestService()
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "Alice", Email: "a@b.com", Password: "longenough"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Name: "Alicia"})
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.Name)
	require.Equal(t, "a@b.com", updated.Email)

	_, _, err = svc.Login(context.Background(), "a@b.com", "longenough")
	require.NoError(t, err)
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	svc, _, _ := newTestService()
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "Alice", Email: "a@b.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Password: "evenl0nger"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@b.com", "evenl0nger")
	require.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "a@b.com", "longenough")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUser(t *testing.T) {
	svc, users, _ := newTestService()
	u, _, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), u.ID))
	require.NotContains(t, users.users, u.ID)
	require.ErrorIs(t, svc.Delete(context.Background(), u.ID), domain.ErrNotFound)
}
