package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

type mockUniversityRepo struct {
	byEmail          *models.University
	byName           *models.University
	created          *models.University
	lastLoginUpdated bool
}

func (m *mockUniversityRepo) FindByEmail(ctx context.Context, email string) (*models.University, error) {
	if m.byEmail == nil {
		return nil, sql.ErrNoRows
	}
	return m.byEmail, nil
}

func (m *mockUniversityRepo) FindByName(ctx context.Context, name string) (*models.University, error) {
	if m.byName == nil {
		return nil, sql.ErrNoRows
	}
	return m.byName, nil
}

func (m *mockUniversityRepo) Create(ctx context.Context, uni *models.University) error {
	uni.ID = "uni-1"
	m.created = uni
	return nil
}

func (m *mockUniversityRepo) UpdateLastLogin(ctx context.Context, id string) error {
	m.lastLoginUpdated = true
	return nil
}

func newAuthServiceForTest(repo *mockUniversityRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "secret",
		Expiration: time.Hour,
		Issuer:     "erasmus-advisor",
	})
}

func TestAuthServiceRegister(t *testing.T) {
	repo := &mockUniversityRepo{}
	svc := newAuthServiceForTest(repo)

	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Università di Pisa",
		Email:    "Erasmus@Unipi.IT",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "uni-1", info.ID)
	assert.Equal(t, "erasmus@unipi.it", info.Email)
	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("password123")))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockUniversityRepo{byEmail: &models.University{ID: "uni-1"}}
	svc := newAuthServiceForTest(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Università di Pisa",
		Email:    "erasmus@unipi.it",
		Password: "password123",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestAuthServiceRegisterShortPassword(t *testing.T) {
	svc := newAuthServiceForTest(&mockUniversityRepo{})

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Università di Pisa",
		Email:    "erasmus@unipi.it",
		Password: "short",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo := &mockUniversityRepo{byEmail: &models.University{
		ID: "uni-1", Name: "Università di Pisa", Email: "erasmus@unipi.it", PasswordHash: string(hash),
	}}
	svc := newAuthServiceForTest(repo)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "erasmus@unipi.it", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.True(t, repo.lastLoginUpdated)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "uni-1", claims.UniversityID)
	assert.Equal(t, "Università di Pisa", claims.Name)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo := &mockUniversityRepo{byEmail: &models.University{ID: "uni-1", PasswordHash: string(hash)}}
	svc := newAuthServiceForTest(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "erasmus@unipi.it", Password: "wrong"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := newAuthServiceForTest(&mockUniversityRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceValidateTokenGarbage(t *testing.T) {
	svc := newAuthServiceForTest(&mockUniversityRepo{})

	_, err := svc.ValidateToken("not-a-token")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
