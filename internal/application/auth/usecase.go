package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
	"github.com/jhoicas/myshop-pos/pkg/jwt"
)

// Credenciales del administrador creado por InitAdmin.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
	DefaultAdminFullName = "Administrator"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Identity usuario autenticado resuelto desde el token. Role se lee de la DB, no del token.
type Identity struct {
	UserID   string
	Username string
	FullName string
	Role     string
}

// AuthUseCase casos de uso de autenticación: login, perfil, verificación de tokens.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Invalid("username and password are required")
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// Verify resuelve el token a una identidad activa. Cualquier falla devuelve error (nunca identidad parcial):
// ErrUnauthorized para token inválido, usuario inexistente o inactivo; el error de la DB tal cual.
func (uc *AuthUseCase) Verify(ctx context.Context, token string) (*Identity, error) {
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return &Identity{UserID: user.ID, Username: user.Username, FullName: user.FullName, Role: user.Role}, nil
}

// Authorize decide si la identidad puede continuar. Sin roles requeridos basta estar autenticado.
func Authorize(id *Identity, roles ...string) bool {
	if id == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if strings.EqualFold(id.Role, r) {
			return true
		}
	}
	return false
}

// Profile devuelve el usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateProfile cambia el nombre y/o la contraseña del propio usuario.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, domain.Invalid("full_name cannot be empty")
		}
		user.FullName = name
	}
	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, domain.Invalid("current password is incorrect")
		}
		hash, err := HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// InitAdmin crea el administrador por defecto si la tabla de usuarios está vacía.
func (uc *AuthUseCase) InitAdmin(ctx context.Context) (*dto.InitResponse, error) {
	count, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return &dto.InitResponse{Created: false, UserCount: count}, nil
	}
	hash, err := HashPassword(DefaultAdminPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		FullName:     DefaultAdminFullName,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		// otro proceso lo creó en paralelo
		if errors.Is(err, domain.ErrDuplicate) {
			return &dto.InitResponse{Created: false, UserCount: 1}, nil
		}
		return nil, err
	}
	return &dto.InitResponse{Created: true, UserCount: 1, Username: admin.Username}, nil
}

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", domain.Invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

// ToUserResponse mapea la entidad a su DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Role:           u.Role,
		IsActive:       u.IsActive,
		TelegramChatID: u.TelegramChatID,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
