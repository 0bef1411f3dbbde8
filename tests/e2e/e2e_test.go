package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staybook/internal/database"
	"staybook/internal/domain"
	"staybook/internal/gateway/chapa"
	"staybook/internal/middleware"
	"staybook/internal/modules/auth"
	"staybook/internal/modules/booking"
	"staybook/internal/modules/listing"
	"staybook/internal/modules/payment"
	"staybook/internal/modules/review"
	jwtsvc "staybook/internal/pkg/jwt"
	"staybook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service

	// provider is the fake payment provider; tests swap providerHandler
	// to script its responses.
	provider        *httptest.Server
	providerHandler http.HandlerFunc
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *TestSuite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate schema")

	s := &TestSuite{db: db}
	s.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.providerHandler != nil {
			s.providerHandler(w, r)
			return
		}
		http.Error(w, "no provider handler scripted", http.StatusInternalServerError)
	}))
	t.Cleanup(s.provider.Close)

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	s.jwtService = jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	gateway := chapa.New(s.provider.URL, "sk-test", 5*time.Second)

	authHandler := auth.NewHandler(auth.NewService(userRepo, s.jwtService))
	listingHandler := listing.NewHandler(listing.NewService(listingRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, listingRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, listingRepo))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, bookingRepo, userRepo, gateway, payment.Options{Currency: "ETB"}))

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		public := v1.Group("/")
		optional := v1.Group("/")
		optional.Use(middleware.OptionalAuth(s.jwtService))
		protected := v1.Group("/")
		protected.Use(middleware.Auth(s.jwtService))

		authHandler.RegisterRoutes(public)
		listingHandler.RegisterRoutes(public, protected)
		bookingHandler.RegisterRoutes(optional, protected)
		reviewHandler.RegisterRoutes(public, protected)
		paymentHandler.RegisterRoutes(public, protected)
	}
	s.router = r
	return s
}

func (s *TestSuite) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, TestResponse) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed TestResponse
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func (s *TestSuite) registerUser(t *testing.T, email, role string) string {
	w, res := s.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := res.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *TestSuite) adminToken(t *testing.T) string {
	admin := domain.User{Email: fmt.Sprintf("admin-%d@test.dev", time.Now().UnixNano()), PasswordHash: "x", Role: domain.RoleAdmin, Name: "Admin"}
	require.NoError(t, s.db.Create(&admin).Error)
	token, err := s.jwtService.GenerateToken(admin.ID, string(admin.Role))
	require.NoError(t, err)
	return token
}

func (s *TestSuite) createListing(t *testing.T, hostToken string, price float64) int64 {
	w, res := s.request(t, http.MethodPost, "/api/v1/listings", hostToken, gin.H{
		"name":            "Lakeside Cabin",
		"location":        "Bahir Dar",
		"price_per_night": price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(res.Data["id"].(float64))
}

func (s *TestSuite) scriptProvider(status int, body string) {
	s.providerHandler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestBookingPriceIsServerComputed(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	listingID := s.createListing(t, hostToken, 100)

	w, res := s.request(t, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"listing_id":  listingID,
		"start_date":  "2024-01-01",
		"end_date":    "2024-01-04",
		"total_price": 9999.0, // must be ignored
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 300.0, res.Data["total_price"])
	assert.Equal(t, "pending", res.Data["status"])
}

func TestBookingRejectsInvalidDateRange(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	listingID := s.createListing(t, hostToken, 100)

	for _, dates := range [][2]string{
		{"2024-01-04", "2024-01-01"},
		{"2024-01-01", "2024-01-01"},
	} {
		w, res := s.request(t, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
			"listing_id": listingID,
			"start_date": dates[0],
			"end_date":   dates[1],
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	}
}

func TestBookingVisibility(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	aliceToken := s.registerUser(t, "alice@test.dev", "guest")
	bobToken := s.registerUser(t, "bob@test.dev", "guest")
	adminToken := s.adminToken(t)
	listingID := s.createListing(t, hostToken, 100)

	for _, token := range []string{aliceToken, bobToken} {
		w, _ := s.request(t, http.MethodPost, "/api/v1/bookings", token, gin.H{
			"listing_id": listingID,
			"start_date": "2024-02-01",
			"end_date":   "2024-02-03",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	count := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		s.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return len(body.Data)
	}

	assert.Equal(t, 1, count(aliceToken), "regular users see only their own bookings")
	assert.Equal(t, 2, count(adminToken), "staff see all bookings")
	assert.Equal(t, 0, count(""), "anonymous callers see none")
}

func TestDuplicateReviewConflicts(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	listingID := s.createListing(t, hostToken, 100)

	w, _ := s.request(t, http.MethodPost, "/api/v1/reviews", guestToken, gin.H{
		"listing_id": listingID,
		"rating":     5,
		"comment":    "great stay",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, res := s.request(t, http.MethodPost, "/api/v1/reviews", guestToken, gin.H{
		"listing_id": listingID,
		"rating":     1,
		"comment":    "changed my mind",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", res.Error.Code)
}

func TestReviewMutationIsOwnerOnly(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	otherToken := s.registerUser(t, "other@test.dev", "guest")
	adminToken := s.adminToken(t)
	listingID := s.createListing(t, hostToken, 100)

	w, res := s.request(t, http.MethodPost, "/api/v1/reviews", guestToken, gin.H{
		"listing_id": listingID,
		"rating":     4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reviewID := int64(res.Data["id"].(float64))

	// neither another user nor an admin may edit someone else's review
	for _, token := range []string{otherToken, adminToken} {
		w, _ = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/reviews/%d", reviewID), token, gin.H{"rating": 1})
		assert.Equal(t, http.StatusForbidden, w.Code)
	}

	w, _ = s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/reviews/%d", reviewID), guestToken, gin.H{"rating": 2})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentLifecycle(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	listingID := s.createListing(t, hostToken, 100)

	w, res := s.request(t, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"listing_id": listingID,
		"start_date": "2024-03-01",
		"end_date":   "2024-03-04",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(res.Data["id"].(float64))

	s.scriptProvider(http.StatusOK, `{"status":"success","message":"Hosted Link","data":{"checkout_url":"https://checkout.example/pay/abc"}}`)
	w, res = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/payments/initiate/%d", bookingID), guestToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "https://checkout.example/pay/abc", res.Data["checkout_url"])
	txRef, _ := res.Data["transaction_id"].(string)
	require.NotEmpty(t, txRef)

	// verification is idempotent: same provider answer, same terminal state
	s.scriptProvider(http.StatusOK, `{"status":"success","message":"verified","data":{"status":"success","amount":300,"currency":"ETB","tx_ref":"`+txRef+`"}}`)
	for i := 0; i < 2; i++ {
		w, res = s.request(t, http.MethodGet, "/api/v1/payments/verify/"+txRef, "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "completed", res.Data["status"])
	}

	var p domain.Payment
	require.NoError(t, s.db.Where("tx_ref = ?", txRef).First(&p).Error)
	assert.Equal(t, domain.PaymentCompleted, p.Status)
	assert.NotNil(t, p.PaidAt)

	// the reconciliation list is staff-only
	w, _ = s.request(t, http.MethodGet, "/api/v1/payments?status=completed", guestToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.request(t, http.MethodGet, "/api/v1/payments?status=completed", s.adminToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), txRef)
}

func TestPaymentCancelledMapsToFailed(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	listingID := s.createListing(t, hostToken, 100)

	w, res := s.request(t, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"listing_id": listingID,
		"start_date": "2024-03-01",
		"end_date":   "2024-03-02",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(res.Data["id"].(float64))

	s.scriptProvider(http.StatusOK, `{"status":"success","message":"Hosted Link","data":{"checkout_url":"https://checkout.example/pay/xyz"}}`)
	w, res = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/payments/initiate/%d", bookingID), guestToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	txRef := res.Data["transaction_id"].(string)

	s.scriptProvider(http.StatusOK, `{"status":"success","message":"verified","data":{"status":"cancelled","tx_ref":"`+txRef+`"}}`)
	w, res = s.request(t, http.MethodGet, "/api/v1/payments/verify/"+txRef, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "failed", res.Data["status"])
}

func TestPaymentInitiateMissingBookingLeavesNoRow(t *testing.T) {
	s := setupTestSuite(t)
	guestToken := s.registerUser(t, "guest@test.dev", "guest")

	s.scriptProvider(http.StatusOK, `{"status":"success","data":{"checkout_url":"https://checkout.example"}}`)
	w, res := s.request(t, http.MethodPost, "/api/v1/payments/initiate/424242", guestToken, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", res.Error.Code)

	var count int64
	require.NoError(t, s.db.Model(&domain.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPaymentInitiateProviderFailure(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	listingID := s.createListing(t, hostToken, 100)

	w, res := s.request(t, http.MethodPost, "/api/v1/bookings", guestToken, gin.H{
		"listing_id": listingID,
		"start_date": "2024-03-01",
		"end_date":   "2024-03-02",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(res.Data["id"].(float64))

	s.scriptProvider(http.StatusBadRequest, `{"status":"failed","message":"Invalid API key"}`)
	w, res = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/payments/initiate/%d", bookingID), guestToken, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code, "provider rejection surfaces as a client error")
	assert.Equal(t, "GATEWAY_ERROR", res.Error.Code)
	assert.NotNil(t, res.Error.Details, "provider payload travels in details")

	var count int64
	require.NoError(t, s.db.Model(&domain.Payment{}).Count(&count).Error)
	assert.Zero(t, count, "no payment row when the provider rejects")
}

func TestListingCreateRequiresHostRole(t *testing.T) {
	s := setupTestSuite(t)
	guestToken := s.registerUser(t, "guest@test.dev", "guest")
	hostToken := s.registerUser(t, "host@test.dev", "host")

	w, res := s.request(t, http.MethodPost, "/api/v1/listings", guestToken, gin.H{
		"name":            "Guest Hideout",
		"location":        "Addis Ababa",
		"price_per_night": 50.0,
	})
	assert.Equal(t, http.StatusForbidden, w.Code, "guests must not create listings")
	assert.Equal(t, "FORBIDDEN", res.Error.Code)

	var count int64
	require.NoError(t, s.db.Model(&domain.Listing{}).Count(&count).Error)
	assert.Zero(t, count)

	s.createListing(t, hostToken, 50)
}

func TestListingHostIsImmutableAndOwnerGated(t *testing.T) {
	s := setupTestSuite(t)
	hostToken := s.registerUser(t, "host@test.dev", "host")
	otherToken := s.registerUser(t, "other@test.dev", "host")
	listingID := s.createListing(t, hostToken, 100)

	w, _ := s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/listings/%d", listingID), otherToken, gin.H{"name": "Stolen Cabin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, res := s.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/listings/%d", listingID), hostToken, gin.H{"price_per_night": 150.0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 150.0, res.Data["price_per_night"])
}
