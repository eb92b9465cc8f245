package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestRouter wires the same route table as routes.SetupRoutes. The
// routes package cannot be imported from here without a cycle.
func newTestRouter() *gin.Engine {
	r := gin.New()

	user := r.Group("/api/v1/user")
	{
		user.POST("/signup", Signup)
		user.POST("/login", Login)
		user.POST("/logout", Logout)
		user.POST("/verify-email", VerifyEmail)
		user.POST("/forgot-password", ForgotPassword)
		user.POST("/reset-password/:token", ResetPassword)
		user.GET("/check-auth", middleware.IsAuthenticated(), CheckAuth)
		user.PUT("/profile/update", middleware.IsAuthenticated(), UpdateProfile)
	}

	restaurant := r.Group("/api/v1/restaurant")
	restaurant.Use(middleware.IsAuthenticated())
	{
		restaurant.POST("/", CreateRestaurant)
		restaurant.GET("/", GetRestaurant)
		restaurant.PUT("/", UpdateRestaurant)
		restaurant.GET("/order", GetRestaurantOrders)
		restaurant.PUT("/order/:orderId/status", UpdateOrderStatus)
		restaurant.GET("/search/:searchText", SearchRestaurant)
		restaurant.GET("/:id", GetSingleRestaurant)
	}

	menu := r.Group("/api/v1/menu")
	menu.Use(middleware.IsAuthenticated())
	{
		menu.POST("/", AddMenu)
		menu.PUT("/:id", EditMenu)
	}

	order := r.Group("/api/v1/order")
	{
		order.GET("/", middleware.IsAuthenticated(), GetOrders)
		order.POST("/checkout/create-checkout-session", middleware.IsAuthenticated(), CreateCheckoutSession)
		order.POST("/webhook", StripeWebhook)
	}

	return r
}

// setup gives each test a fresh in-memory database and a router, and
// stubs the image uploader so no network is touched.
func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()
	// a file-backed database per test; ":memory:" would give every
	// pooled connection its own empty database
	config.InitDB(filepath.Join(t.TempDir(), "test.db"))

	origUpload := uploadImage
	uploadImage = func(_ context.Context, file *multipart.FileHeader) (string, error) {
		return "https://images.test/" + file.Filename, nil
	}
	origDataURL := uploadDataURL
	uploadDataURL = func(_ context.Context, _ string) (string, error) {
		return "https://images.test/profile.png", nil
	}
	t.Cleanup(func() {
		uploadImage = origUpload
		uploadDataURL = origDataURL
	})

	return newTestRouter()
}

func createUser(t *testing.T, email string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Fullname:     "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Contact:      "9876543210",
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return user
}

func sessionFor(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func doJSON(r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// restaurantForm builds the multipart body CreateRestaurant expects.
func restaurantForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		fw, err := mw.CreateFormFile("imageFile", "cover.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

type formBody struct {
	buf         *bytes.Buffer
	contentType string
}

// newMenuForm builds the multipart body the menu handlers expect.
func newMenuForm(t *testing.T, fields map[string]string, withImage bool) formBody {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "dish.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return formBody{buf: buf, contentType: mw.FormDataContentType()}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
