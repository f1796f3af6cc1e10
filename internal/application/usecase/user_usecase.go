package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/myshop-pos/internal/application/auth"
	"github.com/jhoicas/myshop-pos/internal/application/dto"
	"github.com/jhoicas/myshop-pos/internal/domain"
	"github.com/jhoicas/myshop-pos/internal/domain/entity"
	"github.com/jhoicas/myshop-pos/internal/domain/repository"
)

// MinUsernameLength longitud mínima del nombre de usuario.
const MinUsernameLength = 3

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve los usuarios ordenados por nombre completo.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario activo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	fullName := strings.TrimSpace(in.FullName)
	if len(username) < MinUsernameLength {
		return nil, domain.Invalid("username must be at least 3 characters")
	}
	if fullName == "" {
		return nil, domain.Invalid("full_name is required")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCashier
	}
	if !entity.IsValidRole(role) {
		return nil, domain.Invalid("role must be admin, manager or cashier")
	}
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errUsername
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, duplicateAs(err, errUsername)
	}
	return auth.ToUserResponse(u), nil
}

// Update cambia nombre, rol, estado o contraseña. Un admin no puede desactivarse ni quitarse el rol a sí mismo.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if CheckID(id) != nil {
		return nil, domain.ErrUserNotFound
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, domain.Invalid("full_name cannot be empty")
		}
		u.FullName = name
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.Invalid("role must be admin, manager or cashier")
		}
		if actorID == u.ID && *in.Role != entity.RoleAdmin {
			return nil, domain.Invalid("you cannot remove your own admin role")
		}
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		if actorID == u.ID && !*in.IsActive {
			return nil, domain.Invalid("you cannot deactivate your own account")
		}
		u.IsActive = *in.IsActive
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Deactivate desactiva un usuario (no hay borrado físico).
func (uc *UserUseCase) Deactivate(ctx context.Context, actorID, id string) error {
	inactive := false
	_, err := uc.Update(ctx, actorID, id, dto.UpdateUserRequest{IsActive: &inactive})
	return err
}

var errUsername = domain.Duplicate("Username already exists")
