package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/userhub-api/internal/auth"
	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/store"
	"github.com/dcastano/userhub-api/internal/validation"
)

func newAuthService() (*AuthService, *store.MemoryUserStore, *auth.TokenService) {
	users := store.NewMemoryUserStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewAuthService(users, tokens), users, tokens
}

func validRegister() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "Secret1",
		Phone:     "1234567890",
	}
}

func TestRegister(t *testing.T) {
	svc, users, tokens := newAuthService()

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)

	stored, err := users.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1", stored.Password)
	assert.True(t, auth.CheckPassword("Secret1", stored.Password))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	req := validRegister()
	req.Email = "  Jane@Example.COM "
	resp, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	// Same address with different casing still collides.
	req := validRegister()
	req.Email = "JANE@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	const attempts = 10
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, validRegister())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	// Exactly one attempt wins; the rest lose to the uniqueness guard.
	var created int
	for err := range results {
		if err == nil {
			created++
		} else {
			require.ErrorIs(t, err, ErrEmailTaken)
		}
	}
	assert.Equal(t, 1, created)

	_, total, err := users.List(ctx, 0, attempts)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService()

	req := &dto.RegisterRequest{
		FirstName: "J",
		LastName:  "Doe",
		Email:     "not-an-email",
		Password:  "short",
		Phone:     "123",
	}
	_, err := svc.Register(context.Background(), req)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	fields := make(map[string]bool)
	for _, fe := range verrs {
		fields[fe.Field] = true
	}
	assert.True(t, fields["firstName"])
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
	assert.True(t, fields["phone"])
	assert.False(t, fields["lastName"])
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginEnumerationResistance(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Wrong1pw"})
	_, unknownEmail := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "Secret1"})

	// Both failure modes must be indistinguishable.
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}
