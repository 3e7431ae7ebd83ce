package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"visionguide-http-service/internal/error/code"
	"visionguide-http-service/internal/error/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postJSON 发送JSON POST请求
func postJSON(env *panelTestEnv, path string, body interface{}, token string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// apiLogin 登录并返回JWT令牌
func apiLogin(t *testing.T, env *panelTestEnv, username, password string) string {
	t.Helper()

	w := postJSON(env, "/api/auth/login", APILoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestAPILoginIssuesToken(t *testing.T) {
	env := setupPanelTest(t)
	seedPanelIndividual(t, env, "zhangwei", "zhangwei@example.com")

	token := apiLogin(t, env, "zhangwei", "userpass")
	assert.NotEmpty(t, token)

	w := postJSON(env, "/api/auth/login", APILoginRequest{Username: "zhangwei", Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, code.ErrPasswordIncorrect, resp.Code)
	assert.Equal(t, "Invalid credentials", resp.Message)
}

func TestAPIGuidanceRequiresToken(t *testing.T) {
	env := setupPanelTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/guidance", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/guidance", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIGuidanceRoundTrip(t *testing.T) {
	env := setupPanelTest(t)
	user := seedPanelIndividual(t, env, "zhangwei", "zhangwei@example.com")
	token := apiLogin(t, env, "zhangwei", "userpass")

	w := postJSON(env, "/api/guidance", RecordGuidanceRequest{
		ObjectName:     "crosswalk",
		DistanceMeters: 2.4,
		Direction:      "center",
		Confidence:     0.92,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	// 缺少object_name的事件被拒绝
	w = postJSON(env, "/api/guidance", RecordGuidanceRequest{Direction: "left"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/guidance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	entries, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry, ok := entries[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, user.ID, entry["userId"])
	assert.Equal(t, "crosswalk", entry["objectName"])
}
