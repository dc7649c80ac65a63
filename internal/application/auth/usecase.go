package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/jwt"
	"github.com/jhoicas/Account-api/pkg/logger"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y cambio de contraseña.
type AuthUseCase struct {
	tx      security.TxRunner
	hasher  security.CredentialHasher
	catalog *security.RoleCatalog
	gateway *security.AuthenticationGateway
	audit   *security.AuditLog
	jwtCfg  JWTConfig
	log     *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tx security.TxRunner,
	hasher security.CredentialHasher,
	catalog *security.RoleCatalog,
	gateway *security.AuthenticationGateway,
	audit *security.AuditLog,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		tx:      tx,
		hasher:  hasher,
		catalog: catalog,
		gateway: gateway,
		audit:   audit,
		jwtCfg:  jwtCfg,
		log:     log.Component("auth"),
	}
}

// SignUp crea una cuenta. La primera cuenta del sistema recibe ROLE_ADMINISTRATOR y
// las siguientes ROLE_USER. actor es quien hace la petición ("" si es anónima).
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) SignUp(ctx context.Context, actor string, in dto.SignUpRequest, path string) (*dto.UserResponse, error) {
	const op = "signUp"
	if err := CheckPassword(in.Password); err != nil {
		return nil, domain.NewOpError(op, path, err)
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	acc := &entity.Account{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Lastname:     in.Lastname,
		Email:        normalize.Email(in.Email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.Run(ctx, func(s repository.Stores) error {
		exists, err := s.Accounts.ExistsByEmail(ctx, acc.Email)
		if err != nil {
			return fmt.Errorf("comprobar email: %w", err)
		}
		if exists {
			return domain.ErrEmailAlreadyExists
		}
		n, err := s.Accounts.Count(ctx)
		if err != nil {
			return fmt.Errorf("contar cuentas: %w", err)
		}
		roleName := entity.RoleUser
		if n == 0 {
			roleName = entity.RoleAdministrator
		}
		role, err := uc.catalog.FindByName(ctx, s.Roles, roleName)
		if err != nil {
			return err
		}
		acc.Roles = []entity.Role{*role}
		if err := s.Accounts.Create(ctx, acc); err != nil {
			return err
		}
		ev := security.NewEvent(entity.ActionCreateUser, actor, acc.Email, path)
		return uc.audit.Append(ctx, s.Events, &ev)
	})
	if err != nil {
		return nil, domain.NewOpError(op, path, err)
	}
	uc.log.Info().Str("email", acc.Email).Strs("roles", acc.RoleNames()).Msg("cuenta creada")
	return ToUserResponse(acc), nil
}

// Login verifica credenciales vía AuthenticationGateway y emite un JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, path string) (*dto.LoginResponse, error) {
	p, err := uc.gateway.Verify(ctx, in.Email, in.Password, path)
	if err != nil {
		return nil, domain.NewOpError("login", path, err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.AccountID, p.Email, p.Roles, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       p.AccountID,
			Name:     p.Name,
			Lastname: p.Lastname,
			Email:    p.Email,
			Roles:    p.Roles,
		},
	}, nil
}

// ChangePassword reemplaza la contraseña del usuario autenticado.
// La nueva contraseña debe cumplir la política y ser distinta de la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, email string, in dto.ChangePasswordRequest, path string) (*dto.StatusResponse, error) {
	const op = "changePassword"
	if err := CheckPassword(in.NewPassword); err != nil {
		return nil, domain.NewOpError(op, path, err)
	}
	email = normalize.Email(email)
	err := uc.tx.Run(ctx, func(s repository.Stores) error {
		acc, err := s.Accounts.FindByEmailForUpdate(ctx, email)
		if err != nil {
			return fmt.Errorf("buscar cuenta: %w", err)
		}
		if acc == nil {
			return domain.ErrUserNotFound
		}
		if uc.hasher.Matches(in.NewPassword, acc.PasswordHash) {
			return domain.ErrPasswordReused
		}
		hash, err := uc.hasher.Hash(in.NewPassword)
		if err != nil {
			return err
		}
		acc.PasswordHash = hash
		acc.UpdatedAt = time.Now().UTC()
		if err := s.Accounts.Update(ctx, acc); err != nil {
			return fmt.Errorf("guardar contraseña: %w", err)
		}
		ev := security.NewEvent(entity.ActionChangePassword, email, email, path)
		return uc.audit.Append(ctx, s.Events, &ev)
	})
	if err != nil {
		return nil, domain.NewOpError(op, path, err)
	}
	return &dto.StatusResponse{Email: email, Status: "The password has been updated successfully"}, nil
}

// ToUserResponse mapea la cuenta al DTO de salida (sin password).
func ToUserResponse(acc *entity.Account) *dto.UserResponse {
	if acc == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       acc.ID,
		Name:     acc.Name,
		Lastname: acc.Lastname,
		Email:    acc.Email,
		Roles:    acc.RoleNames(),
	}
}
