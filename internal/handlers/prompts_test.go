package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"story-insights-backend/internal/errs"
	"story-insights-backend/internal/handlers"
	"story-insights-backend/internal/models"
)

type fakePromptStore struct {
	versions  []models.PromptVersion
	created   *models.PromptVersion
	createErr error
	appendErr error
	deleteErr error
}

func (f *fakePromptStore) ListVersions() ([]models.PromptVersion, error) {
	return f.versions, nil
}

func (f *fakePromptStore) VersionsByPromptID(promptID string) ([]models.PromptVersion, error) {
	var out []models.PromptVersion
	for _, pv := range f.versions {
		if pv.PromptID == promptID {
			out = append(out, pv)
		}
	}
	return out, nil
}

func (f *fakePromptStore) CreatePrompt(req models.CreatePromptRequest, meta models.PromptMetadata) (*models.PromptVersion, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &models.PromptVersion{
		PromptID:          "11111111-1111-1111-1111-111111111111",
		Flow:              req.Flow,
		PromptTitle:       req.PromptTitle,
		Mode:              req.Mode,
		PromptDescription: req.PromptDescription,
		Version:           1,
		Prompt:            req.Prompt,
		Metadata:          meta,
	}
	return f.created, nil
}

func (f *fakePromptStore) AppendVersion(promptID, promptText string, meta models.PromptMetadata) (*models.PromptVersion, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	max := 0
	var latest models.PromptVersion
	for _, pv := range f.versions {
		if pv.PromptID == promptID && pv.Version > max {
			max = pv.Version
			latest = pv
		}
	}
	if max == 0 {
		return nil, &errs.NotFoundError{Message: "Prompt not found"}
	}
	next := latest
	next.Version = max + 1
	next.Prompt = promptText
	next.Metadata = meta
	f.versions = append(f.versions, next)
	return &next, nil
}

func (f *fakePromptStore) DeleteVersion(promptID string, version int) error {
	return f.deleteErr
}

func promptsRouter(store handlers.PromptStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handlers.NewPromptsHandler(store)
	router.GET("/prompts", h.List)
	router.GET("/prompts/:prompt_id/versions", h.Versions)
	router.POST("/prompts", h.Create)
	router.PUT("/prompts/:prompt_id", h.Update)
	router.DELETE("/prompts", h.Delete)
	return router
}

const promptID = "22222222-2222-2222-2222-222222222222"

func TestListPromptsDeduplicatesWithoutFilters(t *testing.T) {
	store := &fakePromptStore{versions: []models.PromptVersion{
		{PromptID: promptID, Version: 1, PromptTitle: "A"},
		{PromptID: promptID, Version: 2, PromptTitle: "A"},
	}}
	router := promptsRouter(store)

	req, _ := http.NewRequest("GET", "/prompts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.PromptListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Data[0].Version)
}

func TestListPromptsFilterReturnsAllVersions(t *testing.T) {
	store := &fakePromptStore{versions: []models.PromptVersion{
		{PromptID: promptID, Version: 1, PromptTitle: "A"},
		{PromptID: promptID, Version: 2, PromptTitle: "A"},
	}}
	router := promptsRouter(store)

	req, _ := http.NewRequest("GET", "/prompts?prompt_title=A", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.PromptListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Data[0].Version)
}

func TestGetVersionsNotFoundSentinel(t *testing.T) {
	router := promptsRouter(&fakePromptStore{})

	req, _ := http.NewRequest("GET", "/prompts/"+promptID+"/versions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Prompt not found"}`, w.Body.String())
}

func TestCreatePrompt(t *testing.T) {
	store := &fakePromptStore{}
	router := promptsRouter(store)

	body, _ := json.Marshal(models.CreatePromptRequest{
		Flow:              "onboarding",
		PromptTitle:       "Story Writer",
		Mode:              "detailed",
		PromptDescription: "Generates user stories",
		Prompt:            "You are a user story writer.",
		Metadata:          models.PromptMetadata{Author: "sam"},
	})
	req, _ := http.NewRequest("POST", "/prompts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var created models.PromptVersion
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, "sam", created.Metadata.Author)
	assert.NotEmpty(t, created.Metadata.DisplayDate)
	assert.NotEmpty(t, created.Metadata.DisplayTime)
}

func TestCreatePromptValidation(t *testing.T) {
	router := promptsRouter(&fakePromptStore{})

	body, _ := json.Marshal(models.CreatePromptRequest{
		Flow:        "onboarding",
		PromptTitle: "  ",
		Prompt:      "text",
	})
	req, _ := http.NewRequest("POST", "/prompts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePromptConflict(t *testing.T) {
	store := &fakePromptStore{createErr: &errs.ConflictError{Message: "already exists"}}
	router := promptsRouter(store)

	body, _ := json.Marshal(models.CreatePromptRequest{
		Flow:              "onboarding",
		PromptTitle:       "Story Writer",
		PromptDescription: "desc",
		Prompt:            "text",
	})
	req, _ := http.NewRequest("POST", "/prompts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp models.ConflictResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Exists)
	assert.Equal(t, "already exists", resp.Message)
}

func TestUpdatePromptAppendsVersion(t *testing.T) {
	store := &fakePromptStore{versions: []models.PromptVersion{
		{PromptID: promptID, Version: 3, Flow: "onboarding", PromptTitle: "A", Prompt: "old text"},
	}}
	router := promptsRouter(store)

	body, _ := json.Marshal(models.UpdatePromptRequest{Prompt: "new text"})
	req, _ := http.NewRequest("PUT", "/prompts/"+promptID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.PromptVersion
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 4, updated.Version)
	assert.Equal(t, "new text", updated.Prompt)
	assert.Equal(t, "onboarding", updated.Flow)

	// The prior version is still there, unmodified.
	assert.Equal(t, "old text", store.versions[0].Prompt)
	assert.Equal(t, 3, store.versions[0].Version)
}

func TestUpdatePromptNotFound(t *testing.T) {
	router := promptsRouter(&fakePromptStore{})

	body, _ := json.Marshal(models.UpdatePromptRequest{Prompt: "new text"})
	req, _ := http.NewRequest("PUT", "/prompts/"+promptID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePromptVersion(t *testing.T) {
	router := promptsRouter(&fakePromptStore{})

	req, _ := http.NewRequest("DELETE", "/prompts?prompt_id="+promptID+"&version=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")
}

func TestDeletePromptVersionInvalidParams(t *testing.T) {
	router := promptsRouter(&fakePromptStore{})

	req, _ := http.NewRequest("DELETE", "/prompts?prompt_id=not-a-uuid&version=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req, _ = http.NewRequest("DELETE", "/prompts?prompt_id="+promptID+"&version=zero", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPromptHandlersWithoutStore(t *testing.T) {
	router := promptsRouter(nil)

	req, _ := http.NewRequest("GET", "/prompts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "database not available")
}
