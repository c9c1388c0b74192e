package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open2log/shopping-lists/internal/api"
	"github.com/open2log/shopping-lists/internal/auth"
	"github.com/open2log/shopping-lists/internal/storage/sqlite"
)

// setupServer creates a server over a fresh SQLite store. The store is
// returned too so tests can assert on persisted state directly.
func setupServer(t *testing.T, jwtManager *auth.JWTManager) (*gin.Engine, *sqlite.SQLiteStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return api.NewServer(store, jwtManager).Router(), store
}

func doJSON(t *testing.T, router *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "expected data object in response: %s", w.Body.String())
	return data
}

func createList(t *testing.T, router *gin.Engine, userID string, body map[string]any) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/lists", userID, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id, _ := dataOf(t, w)["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealth(t *testing.T) {
	router, _ := setupServer(t, nil)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestMissingIdentity(t *testing.T) {
	router, store := setupServer(t, nil)

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/lists", nil},
		{http.MethodGet, "/lists/some-id", nil},
		{http.MethodPost, "/lists", map[string]any{"name": "Sneaky"}},
		{http.MethodPost, "/lists/some-id/items", map[string]any{"name": "Sneaky"}},
		{http.MethodDelete, "/lists/some-id", nil},
	}

	for _, r := range requests {
		w := doJSON(t, router, r.method, r.path, "", r.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%s %s", r.method, r.path)
	}

	// No mutation happened behind the 400s
	lists, err := store.ListLists(context.Background(), "anyone")
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestCreateList(t *testing.T) {
	router, _ := setupServer(t, nil)

	t.Run("shared defaults to false", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/lists", "alice", map[string]any{
			"name": "Groceries",
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := dataOf(t, w)
		assert.Equal(t, "Groceries", data["name"])
		assert.Equal(t, false, data["shared"])
		assert.NotEmpty(t, data["id"])
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/lists", "alice", map[string]any{
			"description": "nameless",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListVisibility(t *testing.T) {
	router, _ := setupServer(t, nil)

	privateID := createList(t, router, "alice", map[string]any{"name": "Private"})
	sharedID := createList(t, router, "alice", map[string]any{"name": "Shared", "shared": true})

	names := func(userID string) []string {
		w := doJSON(t, router, http.MethodGet, "/lists", userID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		var out []string
		for _, l := range resp.Data {
			out = append(out, l.Name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Private", "Shared"}, names("alice"))
	assert.ElementsMatch(t, []string{"Shared"}, names("bob"))

	t.Run("detail access follows the same rule", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/lists/"+privateID, "alice", nil).Code)
		assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, "/lists/"+privateID, "bob", nil).Code)
		assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/lists/"+sharedID, "bob", nil).Code)
	})
}

func TestAddItem(t *testing.T) {
	router, _ := setupServer(t, nil)

	listID := createList(t, router, "alice", map[string]any{"name": "Groceries"})

	updatedAt := func() string {
		w := doJSON(t, router, http.MethodGet, "/lists/"+listID, "alice", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := dataOf(t, w)["list"].(map[string]any)
		return list["updated_at"].(string)
	}

	before := updatedAt()

	w := doJSON(t, router, http.MethodPost, "/lists/"+listID+"/items", "alice", map[string]any{
		"name": "Milk",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, "Milk", data["name"])
	assert.Equal(t, float64(1), data["quantity"], "quantity should default to 1")

	assert.GreaterOrEqual(t, updatedAt(), before, "adding an item must not move updated_at backwards")

	t.Run("new item is unchecked in detail", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/lists/"+listID, "alice", nil)
		require.Equal(t, http.StatusOK, w.Code)

		items := dataOf(t, w)["items"].([]any)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "Milk", item["name"])
		assert.Equal(t, false, item["checked"])
	})

	t.Run("inaccessible list yields 404 without leaking existence", func(t *testing.T) {
		body := map[string]any{"name": "Probe"}
		existing := doJSON(t, router, http.MethodPost, "/lists/"+listID+"/items", "bob", body)
		missing := doJSON(t, router, http.MethodPost, "/lists/no-such-list/items", "bob", body)

		assert.Equal(t, http.StatusNotFound, existing.Code)
		assert.Equal(t, http.StatusNotFound, missing.Code)
	})

	t.Run("shared list accepts items from any user", func(t *testing.T) {
		sharedID := createList(t, router, "alice", map[string]any{"name": "Potluck", "shared": true})

		w := doJSON(t, router, http.MethodPost, "/lists/"+sharedID+"/items", "bob", map[string]any{
			"name":     "Chips",
			"quantity": 3,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), dataOf(t, w)["quantity"])
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/lists/"+listID+"/items", "alice", map[string]any{
			"quantity": 2,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteList(t *testing.T) {
	router, _ := setupServer(t, nil)

	listID := createList(t, router, "alice", map[string]any{"name": "Doomed"})

	t.Run("non-owner delete reports success without effect", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/lists/"+listID, "mallory", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())

		assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/lists/"+listID, "alice", nil).Code)
	})

	t.Run("owner delete removes the list", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/lists/"+listID, "alice", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodGet, "/lists/"+listID, "alice", nil).Code)
	})

	t.Run("deleting a missing list still succeeds", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/lists/never-existed", "alice", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRoundTripOrdering(t *testing.T) {
	router, _ := setupServer(t, nil)

	listID := createList(t, router, "alice", map[string]any{"name": "Ordered"})
	for _, name := range []string{"B", "A"} {
		w := doJSON(t, router, http.MethodPost, "/lists/"+listID+"/items", "alice", map[string]any{"name": name})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/lists/"+listID, "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	items := dataOf(t, w)["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].(map[string]any)["name"])
	assert.Equal(t, "B", items[1].(map[string]any)["name"])
}

func TestBearerFallback(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router, _ := setupServer(t, jwtManager)

	token, err := jwtManager.Generate("carol")
	require.NoError(t, err)

	t.Run("valid bearer token resolves identity", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/lists", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("identity header wins over bearer token", func(t *testing.T) {
		listID := createList(t, router, "alice", map[string]any{"name": "Alices"})

		req, _ := http.NewRequest(http.MethodGet, "/lists/"+listID, nil)
		req.Header.Set("X-User-Id", "alice")
		req.Header.Set("Authorization", "Bearer "+token) // carol's token
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "header identity alice should read her own list")
	})

	t.Run("garbage token is a missing identity", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/lists", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
