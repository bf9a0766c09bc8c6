package handlers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/mtran/inventory-web/internal/domain"
	"github.com/mtran/inventory-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	parent := testutil.NewCategoryBuilder().WithName("Electronics").Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]interface{}
		expectedStatus int
	}{
		{
			name:           "root category",
			request:        map[string]interface{}{"name": "Office", "description": "Office supplies"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "child category",
			request:        map[string]interface{}{"name": "Laptops", "parentId": parent.ID},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate name",
			request:        map[string]interface{}{"name": "Electronics"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing name",
			request:        map[string]interface{}{"description": "no name"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown parent",
			request:        map[string]interface{}{"name": "Orphan", "parentId": 99999},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/categories"), tt.request, session.AccessToken)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCategoryHandler_RequiresAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/categories"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
}

func TestCategoryHandler_Tree(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	parent := testutil.NewCategoryBuilder().WithName("Electronics").Build(t, ts.DB.DB)
	testutil.NewCategoryBuilder().WithName("Laptops").WithParent(parent).Build(t, ts.DB.DB)
	testutil.NewCategoryBuilder().WithName("Office").Build(t, ts.DB.DB)

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/categories/tree"), nil, session.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var tree []struct {
		Name     string `json:"name"`
		Children []struct {
			Name string `json:"name"`
		} `json:"children"`
	}
	testutil.AssertJSONResponse(t, resp, &tree)

	require.Len(t, tree, 2)
	byName := map[string]int{}
	for i, node := range tree {
		byName[node.Name] = i
	}

	electronics := tree[byName["Electronics"]]
	require.Len(t, electronics.Children, 1)
	assert.Equal(t, "Laptops", electronics.Children[0].Name)
	assert.Empty(t, tree[byName["Office"]].Children)
}

func TestCategoryHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	a := testutil.NewCategoryBuilder().WithName("a").Build(t, ts.DB.DB)
	b := testutil.NewCategoryBuilder().WithName("b").WithParent(a).Build(t, ts.DB.DB)

	t.Run("self parent rejected", func(t *testing.T) {
		body := map[string]interface{}{"name": "a", "parentId": a.ID}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/categories/")+itoa(a.ID), body, session.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "own parent")
	})

	t.Run("cycle rejected", func(t *testing.T) {
		body := map[string]interface{}{"name": "a", "parentId": b.ID}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/categories/")+itoa(a.ID), body, session.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "descendants")
	})

	t.Run("rename succeeds", func(t *testing.T) {
		body := map[string]interface{}{"name": "renamed", "description": "renamed category"}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/categories/")+itoa(b.ID), body, session.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var updated domain.Category
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, "renamed", updated.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		body := map[string]interface{}{"name": "ghost"}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/categories/99999"), body, session.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		body := map[string]interface{}{"name": "ghost"}
		req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/categories/abc"), body, session.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestCategoryHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, session := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	parent := testutil.NewCategoryBuilder().WithName("Parent").Build(t, ts.DB.DB)
	child := testutil.NewCategoryBuilder().WithName("Child").WithParent(parent).Build(t, ts.DB.DB)

	doDelete := func(id string) *http.Response {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/categories/")+id, nil, session.AccessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("parent with children rejected", func(t *testing.T) {
		resp := doDelete(itoa(parent.ID))
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "child categories")
	})

	t.Run("leaf deletes", func(t *testing.T) {
		resp := doDelete(itoa(child.ID))
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("freed parent deletes", func(t *testing.T) {
		resp := doDelete(itoa(parent.ID))
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("already gone", func(t *testing.T) {
		resp := doDelete(itoa(parent.ID))
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}
