package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/repository"
	appErrors "github.com/noah-isme/college-portal-api/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]*models.User
	createErr error
	findErr   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*models.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	key := strings.ToLower(user.Email)
	if _, ok := m.users[key]; ok {
		return repository.ErrDuplicate
	}
	user.ID = "user-" + key
	m.users[key] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	user, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func newAuthServiceForTest(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "secret",
		Expiry:     time.Hour,
		Issuer:     "test",
		BcryptCost: bcrypt.MinCost,
	})
}

func studentSignup() models.SignupRequest {
	return models.SignupRequest{
		Email:           "Student@Example.com",
		Password:        "pa55word",
		ConfirmPassword: "pa55word",
		FullName:        "Thabo Student",
		Role:            models.RoleStudent,
		StudentID:       "STU-001",
		EmployeeID:      "EMP-IGNORED",
	}
}

func TestAuthServiceSignupIssuesToken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthServiceForTest(repo)

	res, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)
	assert.Equal(t, "User created successfully", res.Message)
	assert.Equal(t, "Student@Example.com", res.User.Email)
	require.NotNil(t, res.User.StudentID)
	assert.Equal(t, "STU-001", *res.User.StudentID)
	assert.Nil(t, res.User.EmployeeID)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "Thabo Student", claims.Name)
	assert.Equal(t, "Student@Example.com", claims.Email)

	stored := repo.users["student@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "pa55word", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pa55word")))

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(body), stored.PasswordHash)
}

func TestAuthServiceSignupKeepsSubmittedIdentity(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthServiceForTest(repo)

	req := studentSignup()
	req.Email = "Alice@College.AC.ZA"
	req.FullName = " Alice  Mokoena "
	res, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "Alice@College.AC.ZA", claims.Email)
	assert.Equal(t, " Alice  Mokoena ", claims.Name)
	assert.Equal(t, "Alice@College.AC.ZA", res.User.Email)

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@college.ac.za", Password: "pa55word", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	dup := studentSignup()
	dup.Email = "ALICE@college.ac.za"
	_, err = svc.Signup(context.Background(), dup)
	require.Error(t, err)
	assert.Equal(t, "User already exists with this email", appErrors.FromError(err).Message)
}

func TestAuthServiceSignupValidation(t *testing.T) {
	svc := newAuthServiceForTest(newMockUserRepo())

	req := studentSignup()
	req.FullName = "  "
	_, err := svc.Signup(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "All fields are required", appErr.Message)

	req = studentSignup()
	req.ConfirmPassword = "different"
	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", appErrors.FromError(err).Message)

	req = studentSignup()
	req.Role = "janitor"
	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestAuthServiceSignupDuplicateEmail(t *testing.T) {
	svc := newAuthServiceForTest(newMockUserRepo())
	_, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), studentSignup())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "User already exists with this email", appErr.Message)
}

func TestAuthServiceLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthServiceForTest(repo)
	_, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "student@example.com", Password: "pa55word", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", res.Message)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "student@example.com", Password: "wrong", Role: models.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", appErrors.FromError(err).Message)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "pa55word", Role: models.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", appErrors.FromError(err).Message)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "student@example.com", Password: "pa55word", Role: models.RoleLecturer})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "User is not registered as a lecturer", appErr.Message)

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "student@example.com"})
	require.Error(t, err)
	assert.Equal(t, "Email, password, and role are required", appErrors.FromError(err).Message)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc := newAuthServiceForTest(newMockUserRepo())
	res, err := svc.Signup(context.Background(), studentSignup())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(res.Token)
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)

	_, err = svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
