package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/api"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/handler"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

const testToken = "token-user-1"

// newTestServer câble le routeur complet sur le store mémoire avec une session valide
func newTestServer(t *testing.T) (http.Handler, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mem.SeedSession(testToken, "user-1")
	return api.SetupRouter(handler.New(mem), mem), mem
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ok", envelope.Message)
}

func TestAuthenticatedRoutesRejectMissingToken(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/users/me/points", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/me/points", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePRFlow(t *testing.T) {
	router, _ := newTestServer(t)

	payload := map[string]interface{}{
		"exerciseType": "benchpress",
		"weight":       100,
		"reps":         5,
	}

	rec := doJSON(t, router, http.MethodPost, "/records", payload, testToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// la même performance ne bat pas le record fraîchement posé
	rec = doJSON(t, router, http.MethodPost, "/records/check", payload, testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, false, data["isPR"])
}

func TestCreatePRRejectsInvalidPayload(t *testing.T) {
	router, _ := newTestServer(t)

	payload := map[string]interface{}{
		"exerciseType": "yoga",
		"weight":       50,
		"reps":         5,
	}
	rec := doJSON(t, router, http.MethodPost, "/records", payload, testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChallengeLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/challenges", map[string]interface{}{
		"name":          "Row Challenge",
		"challengeType": "total_volume",
		"targetValue":   200,
		"durationDays":  30,
		"rewardPoints":  150,
	}, testToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	challengeID := envelope.Data.(map[string]interface{})["id"].(string)

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/challenges/%s/join", challengeID), nil, testToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	// rejoindre deux fois retourne 409
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/challenges/%s/join", challengeID), nil, testToken)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/challenges/%s/progress", challengeID), map[string]interface{}{
		"value": 200,
	}, testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope = decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, true, data["completed"])

	// les points de récompense sont crédités
	rec = doJSON(t, router, http.MethodGet, "/users/me/points", nil, testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope = decodeEnvelope(t, rec)
	points := envelope.Data.(map[string]interface{})
	assert.Equal(t, 150.0, points["totalPoints"])
}

func TestLeaderboardRebuildOverHTTP(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/users/me/points", map[string]interface{}{
		"points": 400,
	}, testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/leaderboard/rebuild", nil, testToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/leaderboard?type=global_points", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	entries := envelope.Data.([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "user-1", entry["userId"])
	assert.Equal(t, 1.0, entry["rankPosition"])
}

func TestUnknownRouteReturns404(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetChallengeByIdNotFound(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/challenges/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
