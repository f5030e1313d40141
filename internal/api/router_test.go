package api

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/config"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/policy"
	"github.com/baharkarakas/onboarding-backend/internal/repository/memory"
	"github.com/baharkarakas/onboarding-backend/internal/services"
)

type RouterSuite struct {
	suite.Suite
	srv *httptest.Server

	aliceToken string
	bobToken   string
	adminToken string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctx := context.Background()
	store := memory.New()
	tm := auth.NewTokenManager("a-secret", "r-secret", "test", time.Hour, 24*time.Hour)
	rev := auth.NewMemoryRevocations()
	us := services.NewUserService(store.Users(), tm, rev, nil)
	rs := services.NewRequirementService(store.Requirements(), store.AuditLogs(), policy.MustDefault(nil), nil, nil)

	s.srv = httptest.NewServer(NewRouter(RouterDeps{
		Cfg:            config.Config{CORSOrigins: []string{"*"}},
		TM:             tm,
		Revocations:    rev,
		UserSvc:        us,
		RequirementSvc: rs,
	}))

	token := func(email, name string, role models.Role) string {
		u, _, err := us.EnsureUser(ctx, email, "secret1", name, role)
		s.Require().NoError(err)
		pair, err := tm.GeneratePair(u.ID, u.Role)
		s.Require().NoError(err)
		return pair.Access
	}
	s.aliceToken = token("alice@example.com", "Alice", models.RoleUser)
	s.bobToken = token("bob@example.com", "Bob", models.RoleUser)
	s.adminToken = token("admin@clirec.com", "Admin User", models.RoleAdmin)
}

func (s *RouterSuite) TearDownTest() {
	s.srv.Close()
}

func (s *RouterSuite) do(method, path, token, body string) *http.Response {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, rdr)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (s *RouterSuite) createAcme() models.Requirement {
	resp := s.do(http.MethodPost, "/api/requirements", s.aliceToken,
		`{"clientName":"Acme","clientId":"C-9","region":"EU","responseJson":"{\"step\":3}"}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	return decodeBody[models.Requirement](s.T(), resp)
}

func (s *RouterSuite) TestHealth() {
	resp := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	b, _ := io.ReadAll(resp.Body)
	s.Equal("ok", string(b))
	s.NotEmpty(resp.Header.Get("X-Request-Id"))
}

func (s *RouterSuite) TestAuthRequired() {
	resp := s.do(http.MethodGet, "/api/requirements", "", "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/requirements", "garbage", "")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody[map[string]any](s.T(), resp)
	s.Equal("Invalid or expired token", body["message"])
}

func (s *RouterSuite) TestCreateAndRead() {
	r := s.createAcme()
	s.Equal(models.StatusDraft, r.Status)
	s.False(r.IsLocked)

	resp := s.do(http.MethodGet, "/api/requirements", s.aliceToken, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Len(decodeBody[[]models.Requirement](s.T(), resp), 1)

	resp = s.do(http.MethodGet, "/api/requirements", s.bobToken, "")
	s.Equal(http.StatusOK, resp.StatusCode)
	list := decodeBody[[]models.Requirement](s.T(), resp)
	s.NotNil(list)
	s.Empty(list)
}

func (s *RouterSuite) TestCreateValidationError() {
	resp := s.do(http.MethodPost, "/api/requirements", s.aliceToken, `{"clientName":""}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[map[string]any](s.T(), resp)
	s.NotEmpty(body["message"])
	s.NotEmpty(body["details"])

	resp = s.do(http.MethodPost, "/api/requirements", s.aliceToken, `not json`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *RouterSuite) TestOtherUsersRecordIsNotFound() {
	r := s.createAcme()
	path := "/api/requirements/" + itoa(r.ID)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, path, s.bobToken, "").StatusCode)
	s.Equal(http.StatusNotFound, s.do(http.MethodPut, path, s.bobToken, `{"region":"US"}`).StatusCode)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, path, s.bobToken, "").StatusCode)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/requirements/download/"+itoa(r.ID), s.bobToken, "").StatusCode)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/requirements/abc", s.aliceToken, "").StatusCode)
}

func (s *RouterSuite) TestLockFlow() {
	r := s.createAcme()
	id := itoa(r.ID)

	resp := s.do(http.MethodPut, "/api/admin/requirements/"+id+"/lock", s.adminToken, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(decodeBody[models.Requirement](s.T(), resp).IsLocked)

	resp = s.do(http.MethodPut, "/api/requirements/"+id, s.aliceToken, `{"clientName":"Nope"}`)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.Equal(http.StatusForbidden, s.do(http.MethodDelete, "/api/requirements/"+id, s.aliceToken, "").StatusCode)

	resp = s.do(http.MethodPut, "/api/admin/requirements/"+id, s.adminToken, `{"clientName":"Acme Corp"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Acme Corp", decodeBody[models.Requirement](s.T(), resp).ClientName)

	s.Equal(http.StatusOK, s.do(http.MethodPut, "/api/admin/requirements/"+id+"/unlock", s.adminToken, "").StatusCode)

	resp = s.do(http.MethodDelete, "/api/requirements/"+id, s.aliceToken, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Requirement deleted", decodeBody[map[string]string](s.T(), resp)["message"])

	resp = s.do(http.MethodGet, "/api/admin/requirements/"+id+"/audit", s.adminToken, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	entries := decodeBody[[]models.AuditLogView](s.T(), resp)
	s.Require().Len(entries, 5)
	actions := make([]models.AuditAction, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	s.Equal([]models.AuditAction{
		models.AuditDelete, models.AuditUnlock, models.AuditUpdate, models.AuditLock, models.AuditCreate,
	}, actions)
	s.Equal("Admin User", entries[1].UserName)
	s.Equal("Alice", entries[0].UserName)
}

func (s *RouterSuite) TestAdminRoutesRejectUsers() {
	r := s.createAcme()
	id := itoa(r.ID)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/admin/requirements", ""},
		{http.MethodGet, "/api/admin/requirements/" + id, ""},
		{http.MethodPut, "/api/admin/requirements/" + id + "/status", `{"status":"Approved"}`},
		{http.MethodPut, "/api/admin/requirements/" + id + "/lock", ""},
		{http.MethodGet, "/api/admin/requirements/" + id + "/audit", ""},
	} {
		resp := s.do(tc.method, tc.path, s.aliceToken, tc.body)
		s.Equal(http.StatusForbidden, resp.StatusCode, tc.method+" "+tc.path)
	}
}

func (s *RouterSuite) TestAdminStatusAndList() {
	r := s.createAcme()
	id := itoa(r.ID)

	resp := s.do(http.MethodPut, "/api/admin/requirements/"+id+"/status", s.adminToken, `{"status":"Approved"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(models.StatusApproved, decodeBody[models.Requirement](s.T(), resp).Status)

	resp = s.do(http.MethodPut, "/api/admin/requirements/"+id+"/status", s.adminToken, `{"status":"Archived"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/admin/requirements", s.adminToken, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	all := decodeBody[[]models.Requirement](s.T(), resp)
	s.Require().Len(all, 1)
	s.Require().NotNil(all[0].UserEmail)
	s.Equal("alice@example.com", *all[0].UserEmail)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/admin/requirements/999", s.adminToken, "").StatusCode)
}

func (s *RouterSuite) TestDownload() {
	r := s.createAcme()

	resp := s.do(http.MethodGet, "/api/requirements/download/"+itoa(r.ID), s.aliceToken, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/json", resp.Header.Get("Content-Type"))
	disp, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	s.Require().NoError(err)
	s.Equal("attachment", disp)
	s.Equal("requirement_C-9_"+itoa(r.ID)+".json", params["filename"])
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.JSONEq(`{"step":3}`, string(b))
}

func (s *RouterSuite) TestDownloadFilenameIsEscaped() {
	body, err := json.Marshal(map[string]string{
		"clientName": "Evil", "clientId": `x"; filename="evil.exe`, "region": "EU",
	})
	s.Require().NoError(err)
	resp := s.do(http.MethodPost, "/api/requirements", s.aliceToken, string(body))
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	r := decodeBody[models.Requirement](s.T(), resp)

	resp = s.do(http.MethodGet, "/api/requirements/download/"+itoa(r.ID), s.aliceToken, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	s.Require().NoError(err)
	s.Equal(`requirement_x"; filename="evil.exe_`+itoa(r.ID)+`.json`, params["filename"])
}

func (s *RouterSuite) TestOverlongFieldIsBadRequest() {
	resp := s.do(http.MethodPost, "/api/requirements", s.aliceToken,
		`{"clientName":"`+strings.Repeat("n", 256)+`","clientId":"C-1","region":"EU"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Validation failed", decodeBody[map[string]any](s.T(), resp)["message"])
}

func (s *RouterSuite) TestAuthFlow() {
	resp := s.do(http.MethodPost, "/api/auth/register", "", `{"email":"new@example.com","password":"secret1","fullName":"New"}`)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	reg := decodeBody[map[string]any](s.T(), resp)
	s.Equal(true, reg["success"])
	token := reg["token"].(string)
	refresh := reg["refreshToken"].(string)

	resp = s.do(http.MethodPost, "/api/auth/register", "", `{"email":"new@example.com","password":"secret1","fullName":"New"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("User already exists", decodeBody[map[string]any](s.T(), resp)["message"])

	resp = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"new@example.com","password":"nope"}`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("Invalid credentials", decodeBody[map[string]any](s.T(), resp)["message"])

	resp = s.do(http.MethodGet, "/api/auth/me", token, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	me := decodeBody[map[string]any](s.T(), resp)
	s.Equal("new@example.com", me["email"])
	s.Equal("User", me["role"])

	resp = s.do(http.MethodPost, "/api/auth/refresh", "", `{"refreshToken":"`+refresh+`"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	s.Equal(http.StatusNoContent, s.do(http.MethodPost, "/api/auth/logout", token, "").StatusCode)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", token, "").StatusCode)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func TestRateLimitedRouter(t *testing.T) {
	store := memory.New()
	tm := auth.NewTokenManager("a", "r", "test", time.Hour, time.Hour)
	rev := auth.NewMemoryRevocations()
	h := NewRouter(RouterDeps{
		Cfg:            config.Config{RateRPS: 1, CORSOrigins: []string{"*"}},
		TM:             tm,
		Revocations:    rev,
		UserSvc:        services.NewUserService(store.Users(), tm, rev, nil),
		RequirementSvc: services.NewRequirementService(store.Requirements(), store.AuditLogs(), policy.MustDefault(nil), nil, nil),
	})

	codes := map[int]int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		codes[rec.Code]++
	}
	assert.Equal(t, 1, codes[http.StatusOK])
	assert.Equal(t, 2, codes[http.StatusTooManyRequests])
}
