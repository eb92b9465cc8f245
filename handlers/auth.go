package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"food-order-api/config"
	"food-order-api/mail"
	"food-order-api/middleware"
	"food-order-api/models"
	"food-order-api/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// seam for tests
var uploadDataURL = storage.UploadDataURL

const (
	verificationTTL = 24 * time.Hour
	resetTokenTTL   = 1 * time.Hour
)

type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Contact  string `json:"contact" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	VerificationCode string `json:"verificationCode" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Fullname       string `json:"fullname"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Country        string `json:"country"`
	ProfilePicture string `json:"profilePicture"`
}

// generateVerificationCode returns a 6-digit numeric code.
func generateVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err) // crypto/rand failure means the host is broken
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// generateResetToken returns 40 random bytes, hex encoded.
func generateResetToken() string {
	buf := make([]byte, 40)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Signup creates an unverified account and issues a session immediately.
// The verified-gate is deliberately deferred to route-level checks so the
// user can browse while their verification email is in flight.
func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists with this email"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.Log.Errorw("password hash failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	code := generateVerificationCode()
	expiry := time.Now().Add(verificationTTL)

	user := models.User{
		Fullname:                   req.Fullname,
		Email:                      req.Email,
		PasswordHash:               string(hash),
		Contact:                    req.Contact,
		VerificationToken:          code,
		VerificationTokenExpiresAt: &expiry,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		config.Log.Errorw("user create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		config.Log.Errorw("token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	middleware.SetSessionCookie(c, token)

	mail.SendVerificationEmail(user.Email, code)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"user":    user,
	})
}

// Login authenticates a user. Unknown email and wrong password return
// the same message so account existence never leaks.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect email or password"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		config.Log.Errorw("token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	middleware.SetSessionCookie(c, token)

	now := time.Now()
	config.DB.Model(&user).Update("last_login", now)
	user.LastLogin = &now

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome back " + user.Fullname,
		"user":    user,
	})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successfully"})
}

// VerifyEmail consumes a verification code. A code works once, before
// its expiry; afterwards it is unknown.
func VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	err := config.DB.
		Where("verification_token = ? AND verification_token_expires_at > ?", req.VerificationCode, time.Now()).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired verification token"})
		return
	}

	config.DB.Model(&user).Updates(map[string]interface{}{
		"is_verified":                   true,
		"verification_token":            "",
		"verification_token_expires_at": nil,
	})
	user.IsVerified = true

	mail.SendWelcomeEmail(user.Email, user.Fullname)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified successfully",
		"user":    user,
	})
}

// ForgotPassword issues a reset token and emails the reset link.
func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User doesn't exist"})
		return
	}

	resetToken := generateResetToken()
	expiry := time.Now().Add(resetTokenTTL)
	config.DB.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":            resetToken,
		"reset_password_token_expires_at": expiry,
	})

	mail.SendPasswordResetEmail(user.Email, config.Cfg.FrontendURL+"/resetPassword/"+resetToken)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset link sent to your email"})
}

// ResetPassword consumes a reset token and rehashes the password.
func ResetPassword(c *gin.Context) {
	token := c.Param("token")
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	err := config.DB.
		Where("reset_password_token = ? AND reset_password_token_expires_at > ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired reset token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		config.Log.Errorw("password hash failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	config.DB.Model(&user).Updates(map[string]interface{}{
		"password_hash":                   string(hash),
		"reset_password_token":            "",
		"reset_password_token_expires_at": nil,
	})

	mail.SendResetSuccessEmail(user.Email)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully."})
}

// CheckAuth returns the authenticated user's record.
func CheckAuth(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile updates identity fields; an optional base64 data-URL
// profile picture is pushed to object storage first.
func UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}

	update := map[string]interface{}{
		"fullname": req.Fullname,
		"email":    req.Email,
		"address":  req.Address,
		"city":     req.City,
		"country":  req.Country,
	}
	if req.ProfilePicture != "" {
		pictureURL, err := uploadDataURL(c.Request.Context(), req.ProfilePicture)
		if err != nil {
			config.Log.Errorw("profile picture upload failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		update["profile_picture"] = pictureURL
	}

	if err := config.DB.Model(&user).Updates(update).Error; err != nil {
		config.Log.Errorw("profile update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	config.DB.First(&user, userID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile Updated Successfully",
		"user":    user,
	})
}
