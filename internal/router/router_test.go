package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gymhub/config"
	"gymhub/internal/auth"
	"gymhub/internal/database"
	"gymhub/internal/domain"
	"gymhub/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "gymhub-test",
		},
		OTP: config.OTPConfig{
			TTL:            2 * time.Minute,
			RequestsPerMin: 3,
		},
		Search: config.SearchConfig{
			NearestLimit: 5,
			MaxRadiusKm:  50,
		},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	cfg := testConfig()
	return New(cfg, db), db, cfg
}

func httpDo(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
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
	r.ServeHTTP(w, req)
	var out map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func tokenFor(t *testing.T, cfg *config.Config, u *models.User) string {
	t.Helper()
	tok, err := auth.GenerateAccessToken(&cfg.JWT, u.ID, u.Phone, u.Role, u.IsStaff)
	require.NoError(t, err)
	return tok
}

func seedUser(t *testing.T, db *gorm.DB, phone, role string, isStaff bool) *models.User {
	t.Helper()
	u := &models.User{Phone: phone, Role: role, IsStaff: isStaff, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedGymWithPackage(t *testing.T, db *gorm.DB, ownerID uint, price string) (*models.Gym, *models.Package) {
	t.Helper()
	g := &models.Gym{OwnerID: ownerID, Name: "Iron Temple", Latitude: 35.7, Longitude: 51.4}
	require.NoError(t, db.Create(g).Error)
	p := &models.Package{
		GymID: g.ID, Title: "Monthly", Price: decimal.RequireFromString(price),
		DurationDays: 30, CommissionRate: 0.1,
	}
	require.NoError(t, db.Create(p).Error)
	return g, p
}

func TestOTPLoginFlowOverHTTP(t *testing.T) {
	r, db, _ := newTestRouter(t)

	w, body := httpDo(t, r, http.MethodPost, "/api/v1/auth/otp/request", "", gin.H{"phone": "+7001"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, body["request_id"])

	var o models.OTP
	require.NoError(t, db.Where("phone = ?", "+7001").Order("id DESC").First(&o).Error)

	w, body = httpDo(t, r, http.MethodPost, "/api/v1/auth/otp/verify", "", gin.H{"phone": "+7001", "code": o.Code})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, body["access_token"])

	token := body["access_token"].(string)
	w, body = httpDo(t, r, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := body["user"].(map[string]interface{})
	require.Equal(t, "+7001", user["phone"])
}

func TestStaffLoginOverHTTP(t *testing.T) {
	r, db, _ := newTestRouter(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	staff := &models.User{Phone: "+7002", Role: domain.RoleAdmin, IsStaff: true, IsActive: true, PasswordHash: string(hash)}
	require.NoError(t, db.Create(staff).Error)

	w, body := httpDo(t, r, http.MethodPost, "/api/v1/auth/staff/login", "", gin.H{"phone": "+7002", "password": "s3cret"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, body["access_token"])

	w, _ = httpDo(t, r, http.MethodPost, "/api/v1/auth/staff/login", "", gin.H{"phone": "+7002", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPurchaseLifecycleOverHTTP(t *testing.T) {
	r, db, cfg := newTestRouter(t)
	owner := seedUser(t, db, "+7003", domain.RoleOwner, false)
	buyer := seedUser(t, db, "+7004", domain.RoleCustomer, false)
	_, pkg := seedGymWithPackage(t, db, owner.ID, "1000")
	ownerToken := tokenFor(t, cfg, owner)
	buyerToken := tokenFor(t, cfg, buyer)

	w, body := httpDo(t, r, http.MethodPost, "/api/v1/purchases/pending", buyerToken, gin.H{"package_id": pkg.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	txn := body["transaction"].(map[string]interface{})
	txnID := uint(txn["id"].(float64))

	w, body = httpDo(t, r, http.MethodPost, "/api/v1/purchases/final", buyerToken, gin.H{"transaction_id": txnID})
	require.Equal(t, http.StatusOK, w.Code)
	buyerCode := body["buyer_code"].(string)
	require.NotEmpty(t, buyerCode)

	// A customer cannot hit the verify endpoint.
	w, _ = httpDo(t, r, http.MethodPost, "/api/v1/purchases/verify", buyerToken, gin.H{"buyer_code": buyerCode})
	require.Equal(t, http.StatusForbidden, w.Code)

	w, body = httpDo(t, r, http.MethodPost, "/api/v1/purchases/verify", ownerToken, gin.H{"buyer_code": buyerCode})
	require.Equal(t, http.StatusOK, w.Code)
	purchase := body["purchase"].(map[string]interface{})
	require.Equal(t, domain.VerificationVerified, purchase["verification_status"])

	// Second verify of the same code is rejected.
	w, _ = httpDo(t, r, http.MethodPost, "/api/v1/purchases/verify", ownerToken, gin.H{"buyer_code": buyerCode})
	require.Equal(t, http.StatusNotFound, w.Code)

	w, body = httpDo(t, r, http.MethodGet, "/api/v1/wallet", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	wallet := body["wallet"].(map[string]interface{})
	require.Equal(t, "900", wallet["balance"])
}

func TestPendingPurchaseRejectionsOverHTTP(t *testing.T) {
	r, db, cfg := newTestRouter(t)
	buyer := seedUser(t, db, "+7005", domain.RoleCustomer, false)
	buyerToken := tokenFor(t, cfg, buyer)

	w, _ := httpDo(t, r, http.MethodPost, "/api/v1/purchases/pending", buyerToken, gin.H{"package_id": 9999})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = httpDo(t, r, http.MethodPost, "/api/v1/purchases/pending", "", gin.H{"package_id": 1})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWithdrawalFlowOverHTTP(t *testing.T) {
	r, db, cfg := newTestRouter(t)
	owner := seedUser(t, db, "+7006", domain.RoleOwner, false)
	staff := seedUser(t, db, "+7007", domain.RoleAdmin, true)
	ownerToken := tokenFor(t, cfg, owner)
	staffToken := tokenFor(t, cfg, staff)

	w := &models.Wallet{OwnerID: owner.ID, Balance: decimal.RequireFromString("400")}
	require.NoError(t, db.Create(w).Error)

	// Over-balance request rejected at submission.
	res, _ := httpDo(t, r, http.MethodPost, "/api/v1/withdrawals", ownerToken, gin.H{"amount": "500"})
	require.Equal(t, http.StatusBadRequest, res.Code)

	res, body := httpDo(t, r, http.MethodPost, "/api/v1/withdrawals", ownerToken, gin.H{"amount": "300"})
	require.Equal(t, http.StatusCreated, res.Code)
	req := body["withdraw_request"].(map[string]interface{})
	reqID := uint(req["id"].(float64))

	// Owners cannot decide their own requests.
	res, _ = httpDo(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/withdrawals/%d", reqID), ownerToken,
		gin.H{"status": domain.WithdrawApproved})
	require.Equal(t, http.StatusForbidden, res.Code)

	// pending -> completed is illegal.
	res, _ = httpDo(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/withdrawals/%d", reqID), staffToken,
		gin.H{"status": domain.WithdrawCompleted})
	require.Equal(t, http.StatusBadRequest, res.Code)

	res, _ = httpDo(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/withdrawals/%d", reqID), staffToken,
		gin.H{"status": domain.WithdrawApproved})
	require.Equal(t, http.StatusOK, res.Code)

	res, body = httpDo(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/withdrawals/%d", reqID), staffToken,
		gin.H{"status": domain.WithdrawCompleted, "admin_message": "paid"})
	require.Equal(t, http.StatusOK, res.Code)
	done := body["withdraw_request"].(map[string]interface{})
	require.Equal(t, domain.WithdrawCompleted, done["status"])

	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, w.ID).Error)
	require.True(t, wallet.Balance.Equal(decimal.RequireFromString("100")))
}

func TestNearestGymsOverHTTP(t *testing.T) {
	r, db, _ := newTestRouter(t)
	owner := seedUser(t, db, "+7008", domain.RoleOwner, false)

	near := &models.Gym{OwnerID: owner.ID, Name: "Near", Latitude: 35.70, Longitude: 51.40}
	far := &models.Gym{OwnerID: owner.ID, Name: "Far", Latitude: 35.75, Longitude: 51.50}
	outside := &models.Gym{OwnerID: owner.ID, Name: "Outside", Latitude: 36.90, Longitude: 53.00}
	require.NoError(t, db.Create(near).Error)
	require.NoError(t, db.Create(far).Error)
	require.NoError(t, db.Create(outside).Error)

	w, body := httpDo(t, r, http.MethodGet, "/api/v1/gyms/nearest?lat=35.70&lng=51.40", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	gyms := body["gyms"].([]interface{})
	require.Len(t, gyms, 2)
	first := gyms[0].(map[string]interface{})["gym"].(map[string]interface{})
	require.Equal(t, "Near", first["name"])
}

func TestAdminEndpointsRequireStaff(t *testing.T) {
	r, db, cfg := newTestRouter(t)
	owner := seedUser(t, db, "+7009", domain.RoleOwner, false)
	ownerToken := tokenFor(t, cfg, owner)

	for _, path := range []string{"/api/v1/admin/wallets", "/api/v1/admin/wallet", "/api/v1/admin/transactions", "/api/v1/admin/withdrawals"} {
		w, _ := httpDo(t, r, http.MethodGet, path, ownerToken, nil)
		require.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestGymOwnershipEnforcedOverHTTP(t *testing.T) {
	r, db, cfg := newTestRouter(t)
	owner := seedUser(t, db, "+7010", domain.RoleOwner, false)
	other := seedUser(t, db, "+7011", domain.RoleOwner, false)
	g, _ := seedGymWithPackage(t, db, owner.ID, "1000")

	w, _ := httpDo(t, r, http.MethodPut, fmt.Sprintf("/api/v1/gyms/%d", g.ID), tokenFor(t, cfg, other),
		gin.H{"name": "Hijacked"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w, _ = httpDo(t, r, http.MethodPut, fmt.Sprintf("/api/v1/gyms/%d", g.ID), tokenFor(t, cfg, owner),
		gin.H{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDiscountCreationPermissionsOverHTTP(t *testing.T) {
	r, db, cfg := newTestRouter(t)
	owner := seedUser(t, db, "+7012", domain.RoleOwner, false)
	staff := seedUser(t, db, "+7013", domain.RoleAdmin, true)
	g, _ := seedGymWithPackage(t, db, owner.ID, "1000")

	// An owner cannot mint a platform-funded code.
	w, _ := httpDo(t, r, http.MethodPost, "/api/v1/discounts", tokenFor(t, cfg, owner),
		gin.H{"code": "PLAT10", "discount_type": "percent", "value": "10"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// But can create a club code for their own gym.
	w, body := httpDo(t, r, http.MethodPost, "/api/v1/discounts", tokenFor(t, cfg, owner),
		gin.H{"code": "CLUB10", "discount_type": "percent", "value": "10", "club_id": g.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	d := body["discount"].(map[string]interface{})
	require.Equal(t, domain.SourceClub, d["source_type"])

	// Staff create admin-sourced codes.
	w, body = httpDo(t, r, http.MethodPost, "/api/v1/discounts", tokenFor(t, cfg, staff),
		gin.H{"code": "PLAT10", "discount_type": "percent", "value": "10"})
	require.Equal(t, http.StatusCreated, w.Code)
	d = body["discount"].(map[string]interface{})
	require.Equal(t, domain.SourceAdmin, d["source_type"])
}
