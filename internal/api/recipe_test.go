package api_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRecipeViaAPI(t *testing.T, r *gin.Engine, cookie *http.Cookie, title string, ingredients []string, estimatedTime int) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"title":          title,
		"description":    "test recipe",
		"ingredients":    ingredients,
		"instructions":   "mix and cook",
		"category":       "Dinner",
		"estimated_time": estimatedTime,
	}, withCookie(cookie))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	r, _ := setupTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"title": "Soup",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndGetRecipe(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	id := createRecipeViaAPI(t, r, cookie, "Soup", []string{"water", "salt"}, 30)

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes/"+id, nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Soup", body["title"])
}

func TestGetRecipeBadID(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes/not-a-uuid", nil, withCookie(cookie))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetRecipeNotFound(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes/00000000-0000-0000-0000-000000000001", nil, withCookie(cookie))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBearerTokenAlsoWorks(t *testing.T) {
	r, _ := setupTestServer(t)
	_, token := registerAndLogin(t, r, "chef")

	w := doJSON(t, r, http.MethodGet, "/api/v1/user/recipes", nil, withBearer(token))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateRecipeCrossUserForbidden(t *testing.T) {
	r, _ := setupTestServer(t)
	ownerCookie, _ := registerAndLogin(t, r, "owner")
	otherCookie, _ := registerAndLogin(t, r, "other")

	id := createRecipeViaAPI(t, r, ownerCookie, "Soup", []string{"water"}, 30)

	w := doJSON(t, r, http.MethodPut, "/api/v1/recipes/"+id, map[string]string{
		"title": "Stolen Soup",
	}, withCookie(otherCookie))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRecipeCrossUserForbidden(t *testing.T) {
	r, _ := setupTestServer(t)
	ownerCookie, _ := registerAndLogin(t, r, "owner")
	otherCookie, _ := registerAndLogin(t, r, "other")

	id := createRecipeViaAPI(t, r, ownerCookie, "Soup", []string{"water"}, 30)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/recipes/"+id, nil, withCookie(otherCookie))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/recipes/"+id, nil, withCookie(ownerCookie))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchRecipes(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	createRecipeViaAPI(t, r, cookie, "Chicken Curry", []string{"chicken", "curry paste"}, 45)
	createRecipeViaAPI(t, r, cookie, "Beef Stew", []string{"beef", "potato"}, 90)

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes/search?title=curry", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Chicken Curry")
	assert.NotContains(t, w.Body.String(), "Beef Stew")

	w = doJSON(t, r, http.MethodGet, "/api/v1/recipes/search/ingredient?ing=potato", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Beef Stew")
}

func TestEstimatedTimeRangeEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	createRecipeViaAPI(t, r, cookie, "Quick", []string{"x"}, 10)
	createRecipeViaAPI(t, r, cookie, "Slow", []string{"x"}, 120)

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes/estimated-time-range?min_time=5&max_time=60", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Quick")
	assert.NotContains(t, w.Body.String(), "Slow")
}

func TestStatsNoRecipes(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes/stats/avg-time", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "no recipes found", body["message"])
}

func TestStatsWithRecipes(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	createRecipeViaAPI(t, r, cookie, "Quick", []string{"a", "b"}, 10)
	createRecipeViaAPI(t, r, cookie, "Slow", []string{"c", "d", "e", "f"}, 30)

	w := doJSON(t, r, http.MethodGet, "/api/v1/recipes/stats/count", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["total_recipes"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/recipes/stats/avg-ingredients", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 3, body["avg_ingredients"])
}

func TestFavoritesFlow(t *testing.T) {
	r, _ := setupTestServer(t)
	ownerCookie, _ := registerAndLogin(t, r, "owner")
	fanCookie, _ := registerAndLogin(t, r, "fan")

	id := createRecipeViaAPI(t, r, ownerCookie, "Soup", []string{"water"}, 30)

	w := doJSON(t, r, http.MethodPut, "/api/v1/user/favorites/"+id, nil, withCookie(fanCookie))
	assert.Equal(t, http.StatusOK, w.Code)

	// Favoriting twice stays a single entry.
	w = doJSON(t, r, http.MethodPut, "/api/v1/user/favorites/"+id, nil, withCookie(fanCookie))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/user/favorites/count", nil, withCookie(fanCookie))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["favorites_count"])

	w = doJSON(t, r, http.MethodDelete, "/api/v1/user/favorites/"+id, nil, withCookie(fanCookie))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/user/favorites/count", nil, withCookie(fanCookie))
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.EqualValues(t, 0, body["favorites_count"])
}

func TestShoppingListEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	cookie, _ := registerAndLogin(t, r, "chef")

	id := createRecipeViaAPI(t, r, cookie, "Soup", []string{"water", "salt"}, 30)

	// SMTP is unconfigured in tests, so the mail is logged, not sent.
	w := doJSON(t, r, http.MethodPost, "/api/v1/recipes/"+id+"/shopping-list", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "shop list sent to chef@example.com", body["message"])
}
