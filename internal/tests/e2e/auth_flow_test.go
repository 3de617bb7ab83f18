package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SamuelSChaves/works-to-front-sub002/domain"
	httpx "github.com/SamuelSChaves/works-to-front-sub002/internal/http"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/handlers"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/http/middleware"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/auth"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/database"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/infrastructure/repositories"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/mocks"
	"github.com/SamuelSChaves/works-to-front-sub002/internal/services"
)

var (
	sixDigits = regexp.MustCompile(`\b\d{6}\b`)
	resetLink = regexp.MustCompile(`token_id=([\w-]+)&token=([0-9a-f]+)`)
)

type testStack struct {
	router *gin.Engine
	mailer *mocks.MockMailer
	db     *gorm.DB
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(repositories.AllModels()...))

	mr := miniredis.RunT(t)
	mailer := mocks.NewMockMailer()

	userRepo := repositories.NewUserRepository(db)
	credRepo := repositories.NewCredentialRepository(db)
	sessRepo := repositories.NewSessionRepository(db)
	chalRepo := repositories.NewChallengeRepository(db)
	resetRepo := repositories.NewResetTokenRepository(db)
	permRepo := repositories.NewPermissionRepository(db)
	auditRepo := repositories.NewLoginAuditRepository(db)

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewTokenService("e2e-secret", 30*time.Minute)

	chalSvc := services.NewChallengeService(chalRepo, userRepo, mailer, database.NewRedis(mr.Addr(), "", 0), services.ChallengeConfig{
		CodeTTL:      15 * time.Minute,
		ResendWindow: time.Minute,
		MaxAttempts:  5,
		EmailSubject: "Código de segurança",
	})
	authSvc := services.NewAuthService(userRepo, credRepo, sessRepo, auditRepo, chalSvc, passwordSvc, tokenSvc, services.AuthConfig{
		MaxAttempts:          5,
		LockWindow:           15 * time.Minute,
		RefreshThreshold:     5 * time.Minute,
		RevalidationInterval: 30 * 24 * time.Hour,
	})
	resetSvc := services.NewPasswordResetService(userRepo, credRepo, resetRepo, sessRepo, passwordSvc, mailer, services.ResetConfig{
		TokenTTL:     30 * time.Minute,
		FrontendURL:  "https://works.example.com",
		EmailSubject: "Redefinição de senha",
	})
	permSvc := services.NewPermissionService(permRepo)

	authH := handlers.NewAuthHandlers(authSvc, resetSvc, permSvc, "tecrail_session", 30*time.Minute)
	authMW := middleware.NewAuthMiddleware(authSvc, "tecrail_session", 30*time.Minute)
	permMW := middleware.NewPermissionMiddleware(permSvc)

	stack := &testStack{
		router: httpx.BuildRouter(authH, authMW, permMW),
		mailer: mailer,
		db:     db,
	}
	stack.seed(t, passwordSvc)
	return stack
}

func (s *testStack) seed(t *testing.T, passwordSvc domain.PasswordService) {
	t.Helper()
	hash, err := passwordSvc.Hash("Senha@123")
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, s.db.Create(&repositories.DBCompany{ID: "company-1", Name: "TO Works", Status: domain.StatusActive}).Error)
	require.NoError(t, s.db.Create(&repositories.DBProfile{ID: "profile-1", CompanyID: "company-1", Name: "Operador", Status: domain.StatusActive}).Error)
	require.NoError(t, s.db.Create(&repositories.DBUser{
		ID: "user-1", CompanyID: "company-1", Name: "Maria Silva",
		EmployeeCode: "123456", Email: "maria.silva@example.com",
		ProfileID: "profile-1", JobTitle: "Analista", Team: "Operações",
		Status: domain.StatusActive, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, s.db.Create(&repositories.DBCredential{UserID: "user-1", PasswordHash: hash}).Error)
	require.NoError(t, s.db.Create(&repositories.DBPermission{ProfileID: "profile-1", ScreenID: "reports", Read: 1}).Error)
}

func (s *testStack) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *testStack) lastEmail(t *testing.T) mocks.MockMessage {
	t.Helper()
	require.NotEmpty(t, s.mailer.Sent)
	return s.mailer.Sent[len(s.mailer.Sent)-1]
}

func TestFirstLoginRequiresSecurityValidation(t *testing.T) {
	s := newTestStack(t)

	// Wrong password is a plain 401.
	w := s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "errada@1"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct password, but the account was never security-validated.
	w = s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "Senha@123"})
	require.Equal(t, http.StatusPreconditionRequired, w.Code)

	sv := decode(t, w)["security_validation"].(map[string]interface{})
	challengeID := sv["challenge_id"].(string)
	require.NotEmpty(t, challengeID)
	assert.Equal(t, "m***@example.com", sv["email_hint"])

	code := sixDigits.FindString(s.lastEmail(t).Text)
	require.NotEmpty(t, code, "security code must arrive by email")

	// A wrong code does not finish the login.
	w = s.do(t, http.MethodPost, "/auth/security-code/confirm", "", gin.H{"challenge_id": challengeID, "code": "000000"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The right code does.
	w = s.do(t, http.MethodPost, "/auth/security-code/confirm", "", gin.H{"challenge_id": challengeID, "code": code})
	require.Equal(t, http.StatusOK, w.Code)

	data := decode(t, w)["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "Maria Silva", data["user"].(map[string]interface{})["nome"])

	// A code is single-use.
	w = s.do(t, http.MethodPost, "/auth/security-code/confirm", "", gin.H{"challenge_id": challengeID, "code": code})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The token opens protected routes.
	w = s.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "123456", me["cs"])
	assert.Equal(t, "Operador", me["perfil"])

	// Screen capability granted: read on reports.
	w = s.do(t, http.MethodGet, "/reports", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Permissions matrix reflects the grant.
	w = s.do(t, http.MethodGet, "/auth/permissions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	screens := decode(t, w)["data"].(map[string]interface{})
	reports := screens["reports"].(map[string]interface{})
	assert.Equal(t, true, reports["leitura"])
	assert.Equal(t, false, reports["exclusao"])
}

func TestSecondLoginSkipsValidationAndRevokesTheOldSession(t *testing.T) {
	s := newTestStack(t)
	firstToken := loginValidated(t, s)

	// Now validated: a fresh login goes straight through.
	w := s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "Senha@123"})
	require.Equal(t, http.StatusOK, w.Code)
	secondToken := decode(t, w)["data"].(map[string]interface{})["token"].(string)

	// One live session per user: the first token is dead.
	w = s.do(t, http.MethodGet, "/auth/me", firstToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/auth/me", secondToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Logout kills the session behind the token.
	w = s.do(t, http.MethodPost, "/auth/logout", secondToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/auth/me", secondToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestStack(t)
	loginValidated(t, s)

	// Unknown employee code answers exactly like a known one.
	w := s.do(t, http.MethodPost, "/auth/password-reset/request", "", gin.H{"cs": "999999"})
	require.Equal(t, http.StatusAccepted, w.Code)
	sentBefore := len(s.mailer.Sent)

	w = s.do(t, http.MethodPost, "/auth/password-reset/request", "", gin.H{"cs": "123456"})
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, sentBefore+1, len(s.mailer.Sent))

	match := resetLink.FindStringSubmatch(s.lastEmail(t).Text)
	require.Len(t, match, 3, "reset email must carry the link")
	tokenID, rawToken := match[1], match[2]

	// Weak replacement is rejected.
	w = s.do(t, http.MethodPost, "/auth/password-reset/confirm", "", gin.H{"token_id": tokenID, "token": rawToken, "senha": "fraca"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Forged secret is rejected.
	w = s.do(t, http.MethodPost, "/auth/password-reset/confirm", "", gin.H{"token_id": tokenID, "token": "deadbeef", "senha": "Nova@Senha1"})
	require.Equal(t, http.StatusGone, w.Code)

	w = s.do(t, http.MethodPost, "/auth/password-reset/confirm", "", gin.H{"token_id": tokenID, "token": rawToken, "senha": "Nova@Senha1"})
	require.Equal(t, http.StatusOK, w.Code)

	// The link is single-use.
	w = s.do(t, http.MethodPost, "/auth/password-reset/confirm", "", gin.H{"token_id": tokenID, "token": rawToken, "senha": "Outra@Senha2"})
	require.Equal(t, http.StatusGone, w.Code)

	// Old password is gone, the new one works.
	w = s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "Senha@123"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "Nova@Senha1"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLockoutAfterRepeatedFailures(t *testing.T) {
	s := newTestStack(t)

	for i := 0; i < 4; i++ {
		w := s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "errada@1"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	// The fifth consecutive failure reports the lock, not a plain 401.
	w := s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "errada@1"})
	require.Equal(t, http.StatusLocked, w.Code)

	// Even the right password is refused while the lock holds.
	w = s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "Senha@123"})
	require.Equal(t, http.StatusLocked, w.Code)
}

// loginValidated walks the first-login challenge and returns a live token.
func loginValidated(t *testing.T, s *testStack) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/auth/login", "", gin.H{"cs": "123456", "senha": "Senha@123"})
	require.Equal(t, http.StatusPreconditionRequired, w.Code)
	challengeID := decode(t, w)["security_validation"].(map[string]interface{})["challenge_id"].(string)
	code := sixDigits.FindString(s.lastEmail(t).Text)
	require.NotEmpty(t, code)

	w = s.do(t, http.MethodPost, "/auth/security-code/confirm", "", gin.H{"challenge_id": challengeID, "code": code})
	require.Equal(t, http.StatusOK, w.Code)
	return decode(t, w)["data"].(map[string]interface{})["token"].(string)
}
