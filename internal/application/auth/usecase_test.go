package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Account-api/internal/application/auth"
	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/infrastructure/crypto"
	"github.com/jhoicas/Account-api/internal/infrastructure/memory"
	"github.com/jhoicas/Account-api/pkg/jwt"
	"github.com/jhoicas/Account-api/pkg/logger"
)

const (
	signupPath     = "/api/auth/signup"
	changepassPath = "/api/auth/changepass"
	loginPath      = "/api/auth/login"
	secret         = "test-secret"
)

func newAuthUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	log := logger.Nop()
	store := memory.New()
	catalog := security.NewRoleCatalog(log)
	require.NoError(t, catalog.EnsureSeeded(context.Background(), store.Stores().Roles))
	hasher := crypto.NewBcryptHasher(bcrypt.MinCost)
	audit := security.NewAuditLog(log)
	gateway := security.NewAuthenticationGateway(store, store.Stores(), hasher, security.NewLockoutTracker(log), audit, nil, log)
	uc := auth.NewAuthUseCase(store, hasher, catalog, gateway, audit, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}, log)
	return uc, store
}

func signUp(email string) dto.SignUpRequest {
	return dto.SignUpRequest{Name: "Ana", Lastname: "Pérez", Email: email, Password: "una-contraseña-larga"}
}

func events(t *testing.T, store *memory.Store) []entity.AuditEvent {
	t.Helper()
	evs, err := store.Stores().Events.ListAll(context.Background())
	require.NoError(t, err)
	return evs
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de contraseñas
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckPassword(t *testing.T) {
	assert.ErrorIs(t, auth.CheckPassword("corta"), domain.ErrPasswordTooShort)
	assert.ErrorIs(t, auth.CheckPassword("PasswordForMarch"), domain.ErrBreachedPassword)
	assert.ErrorIs(t, auth.CheckPassword("ñññññññññññ"), domain.ErrPasswordTooShort, "se cuentan caracteres, no bytes")
	assert.NoError(t, auth.CheckPassword("contraseña12"))
}

// ──────────────────────────────────────────────────────────────────────────────
// SignUp
// ──────────────────────────────────────────────────────────────────────────────

func TestSignUp_PrimeraCuentaEsAdministrador(t *testing.T) {
	uc, store := newAuthUseCase(t)
	ctx := context.Background()

	first, err := uc.SignUp(ctx, "", signUp("Admin@Acme.com"), signupPath)
	require.NoError(t, err)
	assert.Equal(t, "admin@acme.com", first.Email, "el email se guarda en minúsculas")
	assert.Equal(t, []string{entity.RoleAdministrator}, first.Roles)

	second, err := uc.SignUp(ctx, "admin@acme.com", signUp("user@acme.com"), signupPath)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser}, second.Roles)

	evs := events(t, store)
	require.Len(t, evs, 2)
	assert.Equal(t, entity.ActionCreateUser, evs[0].Action)
	assert.Equal(t, entity.SubjectAnonymous, evs[0].Subject)
	assert.Equal(t, "admin@acme.com", evs[0].Object)
	assert.Equal(t, signupPath, evs[0].Path)
	assert.Equal(t, "admin@acme.com", evs[1].Subject)
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	uc, store := newAuthUseCase(t)
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "", signUp("user@acme.com"), signupPath)
	require.NoError(t, err)

	_, err = uc.SignUp(ctx, "", signUp("USER@acme.com"), signupPath)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, signupPath, domain.PathOf(err))
	assert.Len(t, events(t, store), 1, "un alta rechazada no deja evento")
}

func TestSignUp_ContraseñaFiltrada(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	in := signUp("user@acme.com")
	in.Password = "PasswordForJanuary"
	_, err := uc.SignUp(context.Background(), "", in, signupPath)
	assert.ErrorIs(t, err, domain.ErrBreachedPassword)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangePassword
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword(t *testing.T) {
	uc, store := newAuthUseCase(t)
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "", signUp("user@acme.com"), signupPath)
	require.NoError(t, err)

	_, err = uc.ChangePassword(ctx, "user@acme.com", dto.ChangePasswordRequest{NewPassword: "una-contraseña-larga"}, changepassPath)
	assert.ErrorIs(t, err, domain.ErrPasswordReused)

	res, err := uc.ChangePassword(ctx, "User@acme.com", dto.ChangePasswordRequest{NewPassword: "otra-contraseña-larga"}, changepassPath)
	require.NoError(t, err)
	assert.Equal(t, "user@acme.com", res.Email)

	evs := events(t, store)
	last := evs[len(evs)-1]
	assert.Equal(t, entity.ActionChangePassword, last.Action)
	assert.Equal(t, "user@acme.com", last.Subject)
	assert.Equal(t, "user@acme.com", last.Object)
	assert.Equal(t, changepassPath, last.Path)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "user@acme.com", Password: "otra-contraseña-larga"}, loginPath)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteJWTConRoles(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "", signUp("admin@acme.com"), signupPath)
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@acme.com", Password: "una-contraseña-larga"}, loginPath)
	require.NoError(t, err)
	assert.Equal(t, "Pérez", res.User.Lastname)

	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@acme.com", claims.Email)
	assert.Equal(t, []string{entity.RoleAdministrator}, claims.Roles)
	assert.Equal(t, res.User.ID, claims.UserID)
}

func TestLogin_FalloUniforme(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "", signUp("user@acme.com"), signupPath)
	require.NoError(t, err)

	_, errWrong := uc.Login(ctx, dto.LoginRequest{Email: "user@acme.com", Password: "incorrecta"}, loginPath)
	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "nadie@acme.com", Password: "incorrecta"}, loginPath)

	assert.ErrorIs(t, errWrong, domain.ErrAuthenticationFailed)
	assert.ErrorIs(t, errUnknown, domain.ErrAuthenticationFailed)
	assert.Equal(t, errWrong.Error(), errUnknown.Error(), "el mensaje no revela si el email existe")
}
