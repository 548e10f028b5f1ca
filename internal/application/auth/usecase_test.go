package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oficinapro/oficina-api/internal/application/auth"
	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
	"github.com/oficinapro/oficina-api/pkg/jwt"
)

const testSecret = "segredo-de-teste-bem-longo"

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func newAuthFixture(t *testing.T) (*auth.UseCase, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	clock := fixedClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	return auth.NewUseCase(repo, clock, testSecret, "oficina-api", 60), repo
}

func TestRegister_NormalizaEmailEHasheiaSenha(t *testing.T) {
	uc, repo := newAuthFixture(t)

	u, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name:     "Maria Souza",
		Email:    "  Maria@Example.COM ",
		Password: "senha-segura-123",
	})
	require.NoError(t, err)

	assert.Equal(t, "maria@example.com", u.Email)
	assert.Equal(t, "CLIENT", u.Role, "papel default")
	assert.NotEqual(t, "senha-segura-123", u.PasswordHash, "senha nunca em claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("senha-segura-123")))
	assert.Contains(t, repo.byEmail, "maria@example.com")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthFixture(t)
	req := dto.RegisterRequest{Name: "Maria", Email: "maria@example.com", Password: "senha-segura-123"}

	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// Duplicidade também vale com caixa diferente: o e-mail é normalizado.
	req.Email = "MARIA@example.com"
	_, err = uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PapelDesconhecido(t *testing.T) {
	uc, _ := newAuthFixture(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Maria", Email: "maria@example.com", Password: "senha-segura-123", Role: "GERENTE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteTokenComPapelNosClaims(t *testing.T) {
	uc, _ := newAuthFixture(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Maria", Email: "maria@example.com", Password: "senha-segura-123", Role: "EMPLOYEE",
	})
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "maria@example.com", Password: "senha-segura-123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "EMPLOYEE", resp.User.Role)
	assert.NotEmpty(t, resp.User.ID)

	userID, role, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, "EMPLOYEE", role)
}

func TestLogin_CredenciaisInvalidasMesmoErro(t *testing.T) {
	// Usuário inexistente e senha errada respondem o mesmo erro: não vazar
	// existência de conta.
	uc, _ := newAuthFixture(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Maria", Email: "maria@example.com", Password: "senha-segura-123",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ninguem@example.com", Password: "qualquer"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "maria@example.com", Password: "senha-errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserResponse_NaoExpoeHash(t *testing.T) {
	u := &entity.User{ID: "u1", Name: "Maria", Email: "maria@example.com", Role: "ADMIN", PasswordHash: "$2a$10$x"}
	resp := auth.UserResponse(u)
	assert.Equal(t, "u1", resp.ID)
	assert.Equal(t, "ADMIN", resp.Role)
}
