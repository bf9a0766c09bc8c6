package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/mtran/inventory-web/internal/auth"
	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	testutil.NewUserBuilder().
		WithUsername("inactiveuser").
		WithPassword("correctpassword").
		WithStatus(domain.UserStatusInactive).
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login",
			request: map[string]string{
				"username": user.Username,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.SessionResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, user.Username, result.User.Username)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
				assert.Greater(t, result.TokenExpires, time.Now().UnixMilli())
				assert.Empty(t, result.Error)
			},
		},
		{
			name: "wrong password",
			request: map[string]string{
				"username": user.Username,
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown user",
			request: map[string]string{
				"username": "nonexistent",
				"password": "anypassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "inactive account",
			request: map[string]string{
				"username": "inactiveuser",
				"password": "correctpassword",
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "missing password",
			request: map[string]string{
				"username": user.Username,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty request body",
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.BaseURL()+"/auth/login", "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Session(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, session := testutil.NewUserBuilder().
		WithRole(domain.RoleModerator).
		BuildAndLogin(t, ts)

	t.Run("valid token", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.BaseURL()+"/auth/session", nil, session.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result testutil.SessionResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, user.Username, result.User.Username)
		assert.Equal(t, string(domain.RoleModerator), result.User.Role)
	})

	t.Run("no token", func(t *testing.T) {
		resp, err := http.Get(ts.BaseURL() + "/auth/session")
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.BaseURL()+"/auth/session", nil, "not.a.token")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestAuthHandler_TransparentRefresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	// Mint an access token that is already expired but properly signed
	expiredManager := auth.NewManager(
		ts.Config.JWTAccessSecret,
		ts.Config.JWTRefreshSecret,
		-time.Minute,
		ts.Config.RefreshTokenTTL,
	)
	expiredAccess, err := expiredManager.IssueAccessToken(auth.TokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	require.NoError(t, err)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.BaseURL()+"/auth/session", nil, expiredAccess)
	req.Header.Set("X-Refresh-Token", session.RefreshToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	// The rotated pair travels back in response headers
	newAccess := resp.Header.Get("X-Access-Token")
	newRefresh := resp.Header.Get("X-Refresh-Token")
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.NotEqual(t, session.RefreshToken, newRefresh)
	assert.NotEmpty(t, resp.Header.Get("X-Token-Expires"))

	// The superseded refresh token no longer opens a session
	stale := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.BaseURL()+"/auth/session", nil, expiredAccess)
	stale.Header.Set("X-Refresh-Token", session.RefreshToken)

	staleResp, err := http.DefaultClient.Do(stale)
	require.NoError(t, err)
	defer staleResp.Body.Close()

	testutil.AssertStatusCode(t, staleResp, http.StatusUnauthorized)
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.BaseURL()+"/auth/logout", nil, session.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	// The stored refresh token is gone
	stored, err := ts.Repos.User.GetByID(req.Context(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
}

func TestAdminUsersEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, adminSession := testutil.NewUserBuilder().
		WithRole(domain.RoleAdmin).
		BuildAndLogin(t, ts)
	_, userSession := testutil.NewUserBuilder().
		WithRole(domain.RoleUser).
		BuildAndLogin(t, ts)

	t.Run("admin can list users", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/admin/users"), nil, adminSession.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var users []domain.User
		testutil.AssertJSONResponse(t, resp, &users)
		assert.Len(t, users, 2)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/admin/users"), nil, userSession.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Forbidden")
	})
}

func TestDashboardRedirectsBrowserRequests(t *testing.T) {
	ts := testutil.NewTestServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	t.Run("unauthenticated request is redirected to sign-in", func(t *testing.T) {
		resp, err := client.Get(ts.BaseURL() + "/dashboard/")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/auth/signin", resp.Header.Get("Location"))
	})

	t.Run("authenticated request gets the overview", func(t *testing.T) {
		_, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.BaseURL()+"/dashboard/", nil, session.AccessToken)
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})
}
