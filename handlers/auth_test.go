package handlers

import (
	"net/http"
	"testing"
	"time"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const signupBody = `{"fullname":"Ada Lovelace","email":"ada@example.com","password":"secret123","contact":"9876543210"}`

func TestSignupDuplicateEmailConflict(t *testing.T) {
	r := setup(t)

	w := doJSON(r, http.MethodPost, "/api/v1/user/signup", signupBody, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/user/signup", signupBody, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", "ada@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignupIssuesSessionBeforeVerification(t *testing.T) {
	r := setup(t)

	w := doJSON(r, http.MethodPost, "/api/v1/user/signup", signupBody, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var session *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			session = ck
		}
	}
	require.NotNil(t, session, "signup must set the session cookie")
	assert.True(t, session.HttpOnly)

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.False(t, user.IsVerified)

	// The unverified session is already usable.
	w = doJSON(r, http.MethodGet, "/api/v1/user/check-auth", "", session)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	r := setup(t)
	createUser(t, "known@example.com")

	wrongPassword := doJSON(r, http.MethodPost, "/api/v1/user/login",
		`{"email":"known@example.com","password":"not-the-password"}`, nil)
	unknownEmail := doJSON(r, http.MethodPost, "/api/v1/user/login",
		`{"email":"nobody@example.com","password":"whatever123"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	r := setup(t)
	user := createUser(t, "known@example.com")
	require.Nil(t, user.LastLogin)

	w := doJSON(r, http.MethodPost, "/api/v1/user/login",
		`{"email":"known@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	config.DB.First(&user, user.ID)
	assert.NotNil(t, user.LastLogin)
}

func TestVerifyEmailCodeSingleUseAndExpiry(t *testing.T) {
	r := setup(t)

	w := doJSON(r, http.MethodPost, "/api/v1/user/signup", signupBody, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "ada@example.com").First(&user).Error)
	code := user.VerificationToken
	require.Len(t, code, 6)

	// First use before expiry succeeds.
	w = doJSON(r, http.MethodPost, "/api/v1/user/verify-email",
		`{"verificationCode":"`+code+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	config.DB.First(&user, user.ID)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.VerificationToken)

	// The code was cleared by use; replaying it fails.
	w = doJSON(r, http.MethodPost, "/api/v1/user/verify-email",
		`{"verificationCode":"`+code+`"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmailRejectsExpiredCode(t *testing.T) {
	r := setup(t)

	w := doJSON(r, http.MethodPost, "/api/v1/user/signup", signupBody, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "ada@example.com").First(&user).Error)

	expired := time.Now().Add(-time.Minute)
	config.DB.Model(&user).Update("verification_token_expires_at", expired)

	w = doJSON(r, http.MethodPost, "/api/v1/user/verify-email",
		`{"verificationCode":"`+user.VerificationToken+`"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	config.DB.First(&user, user.ID)
	assert.False(t, user.IsVerified)
}

func TestPasswordResetFlow(t *testing.T) {
	r := setup(t)
	user := createUser(t, "reset@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/user/forgot-password",
		`{"email":"reset@example.com"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	config.DB.First(&user, user.ID)
	require.Len(t, user.ResetPasswordToken, 80) // 40 random bytes, hex

	w = doJSON(r, http.MethodPost, "/api/v1/user/reset-password/"+user.ResetPasswordToken,
		`{"newPassword":"brand-new-pass"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	config.DB.First(&user, user.ID)
	assert.Empty(t, user.ResetPasswordToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("brand-new-pass")))

	// Token is single use.
	w = doJSON(r, http.MethodPost, "/api/v1/user/reset-password/"+user.ResetPasswordToken,
		`{"newPassword":"another-pass1"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	r := setup(t)
	user := createUser(t, "reset@example.com")

	w := doJSON(r, http.MethodPost, "/api/v1/user/forgot-password",
		`{"email":"reset@example.com"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	config.DB.First(&user, user.ID)
	config.DB.Model(&user).Update("reset_password_token_expires_at", time.Now().Add(-time.Minute))

	w = doJSON(r, http.MethodPost, "/api/v1/user/reset-password/"+user.ResetPasswordToken,
		`{"newPassword":"brand-new-pass"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r := setup(t)
	user := createUser(t, "profile@example.com")
	session := sessionFor(t, &user)

	body := `{"fullname":"New Name","email":"profile@example.com","address":"12 Main St","city":"Pune","country":"India","profilePicture":"data:image/png;base64,aGk="}`
	w := doJSON(r, http.MethodPut, "/api/v1/user/profile/update", body, session)
	require.Equal(t, http.StatusOK, w.Code)

	config.DB.First(&user, user.ID)
	assert.Equal(t, "New Name", user.Fullname)
	assert.Equal(t, "Pune", user.City)
	assert.Equal(t, "https://images.test/profile.png", user.ProfilePicture)
}

func TestCheckAuthRequiresSession(t *testing.T) {
	r := setup(t)
	w := doJSON(r, http.MethodGet, "/api/v1/user/check-auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
