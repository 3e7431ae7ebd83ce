package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"visionguide-http-service/config"
	"visionguide-http-service/middleware"
	"visionguide-http-service/models"
	"visionguide-http-service/services"
	"visionguide-http-service/services/container"
	"visionguide-http-service/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// panelTestEnv 管理面板控制器测试环境
type panelTestEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	container *container.ServiceContainer
	sessions  services.InterfaceSessionService
}

// setupPanelTest 搭建完整的管理面板测试环境，路由注册与生产环境保持一致
func setupPanelTest(t *testing.T) *panelTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AdminUser{},
		&models.Individual{},
		&models.ActivityLog{},
		&models.GuidanceLog{},
	))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		SessionSecret:     "panel-test-secret",
		SessionTTLMinutes: 60,
		JWTSecretKey:      "panel-test-jwt-secret",
	}

	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	sessions := serviceContainer.GetService("session").(services.InterfaceSessionService)
	middleware.InitSessionMiddleware(cfg, sessions)
	middleware.InitAuthMiddleware(cfg)

	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")

	r.GET("/login", HandleAuthFunc(serviceContainer, "showLogin"))
	r.POST("/login", HandleAuthFunc(serviceContainer, "login"))
	r.GET("/logout", HandleAuthFunc(serviceContainer, "logout"))

	authed := r.Group("/")
	authed.Use(middleware.RequireAuthenticated())
	authed.GET("", HandleIndividualFunc(serviceContainer, "index"))
	authed.POST("/edit/:id", HandleIndividualFunc(serviceContainer, "editIndividual"))
	authed.POST("/delete/:id", HandleIndividualFunc(serviceContainer, "deleteIndividual"))
	authed.GET("/guidance_history", HandleGuidanceFunc(serviceContainer, "guidanceHistory"))

	super := r.Group("/")
	super.Use(middleware.RequireAuthenticated(), middleware.RequireSuperAdmin())
	super.GET("/activity_log", HandleActivityLogFunc(serviceContainer, "activityLog"))
	super.GET("/manage_admins", HandleAdminUserFunc(serviceContainer, "manageAdmins"))
	super.POST("/add_admin", HandleAdminUserFunc(serviceContainer, "addAdmin"))
	super.POST("/edit_admin/:id", HandleAdminUserFunc(serviceContainer, "editAdmin"))
	super.POST("/delete_admin/:id", HandleAdminUserFunc(serviceContainer, "deleteAdmin"))

	api := r.Group("/api")
	api.POST("/auth/login", HandleAPIFunc(serviceContainer, "login"))
	guarded := api.Group("/")
	guarded.Use(middleware.AuthenticateAppUser())
	guarded.GET("/guidance", HandleAPIFunc(serviceContainer, "listGuidance"))
	guarded.POST("/guidance", HandleAPIFunc(serviceContainer, "recordGuidance"))

	return &panelTestEnv{
		router:    r,
		db:        db,
		cfg:       cfg,
		container: serviceContainer,
		sessions:  sessions,
	}
}

// seedPanelAdmin 写入一个管理员账号
func seedPanelAdmin(t *testing.T, env *panelTestEnv, username, password, role string) *models.AdminUser {
	t.Helper()

	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)

	admin := &models.AdminUser{Username: username, Password: hashed, Role: role}
	require.NoError(t, env.db.Create(admin).Error)
	return admin
}

// loginAs 直接创建会话并返回签名Cookie，绕过登录表单
func loginAs(t *testing.T, env *panelTestEnv, username, role string) (*http.Cookie, string) {
	t.Helper()

	session, err := env.sessions.Create(models.Principal{Username: username, Role: role})
	require.NoError(t, err)

	cookie := &http.Cookie{
		Name:  middleware.SessionCookieName,
		Value: utils.SignValue(session.ID, env.cfg.SessionSecret),
	}
	return cookie, session.ID
}

// postForm 发送表单POST请求
func postForm(env *panelTestEnv, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// getPage 发送GET请求
func getPage(env *panelTestEnv, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// sessionCookieFrom 从响应中取出会话Cookie
func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// 用户名不存在和密码错误都返回同一条提示，请求保持匿名
func TestLoginRejectsInvalidCredentials(t *testing.T) {
	env := setupPanelTest(t)
	seedPanelAdmin(t, env, "alice", "secret", models.RoleSuperAdmin)

	w := postForm(env, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Empty(t, w.Result().Cookies())

	w = postForm(env, "/login", url.Values{"username": {"nobody"}, "password": {"secret"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	env := setupPanelTest(t)
	seedPanelAdmin(t, env, "alice", "secret", models.RoleSuperAdmin)

	w := postForm(env, "/login", url.Values{"username": {"alice"}, "password": {"secret"}}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := sessionCookieFrom(t, w)
	assert.True(t, cookie.HttpOnly)

	// 会话Cookie经过签名，可以直接访问受保护页面
	w = getPage(env, "/", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Signed in as alice")
}

// 登录时用户名两端的空白会被去除
func TestLoginTrimsUsername(t *testing.T) {
	env := setupPanelTest(t)
	seedPanelAdmin(t, env, "alice", "secret", models.RoleSuperAdmin)

	w := postForm(env, "/login", url.Values{"username": {"  alice  "}, "password": {"secret"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	env := setupPanelTest(t)
	seedPanelAdmin(t, env, "alice", "secret", models.RoleSuperAdmin)
	cookie, sessionID := loginAs(t, env, "alice", models.RoleSuperAdmin)

	w := getPage(env, "/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// 会话已销毁，旧Cookie不再可用
	_, err := env.sessions.Get(sessionID)
	assert.ErrorIs(t, err, redis.Nil)

	w = getPage(env, "/", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestIndexRequiresLogin(t *testing.T) {
	env := setupPanelTest(t)

	w := getPage(env, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
