package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/authz"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
	"github.com/oficinapro/oficina-api/pkg/jwt"
)

// UseCase registro e autenticação de usuários. Senhas com bcrypt,
// sessão via JWT assinado com HS256.
type UseCase struct {
	userRepo   repository.UserRepository
	clock      ports.Clock
	jwtSecret  string
	jwtIssuer  string
	jwtMinutes int
}

// NewUseCase constrói o caso de uso.
func NewUseCase(userRepo repository.UserRepository, clock ports.Clock, jwtSecret, jwtIssuer string, jwtMinutes int) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		clock:      clock,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		jwtMinutes: jwtMinutes,
	}
}

// Register cadastra um usuário. E-mail é único; o papel default é CLIENT.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role := in.Role
	if role == "" {
		role = string(authz.RoleClient)
	}
	if !authz.ValidRole(authz.Role(role)) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		ClientID:     in.ClientID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login valida as credenciais e emite o token. Credencial inválida e usuário
// inexistente respondem o mesmo erro para não vazar existência de conta.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, u.ID, u.Role, uc.jwtIssuer, uc.jwtMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  UserResponse(u),
	}, nil
}

// UserResponse converte a entidade para o DTO da API (nunca expõe o hash).
func UserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
