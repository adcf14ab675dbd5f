package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/domain/tracker"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
	"github.com/Dee1911/Aspire.can/internal/recommend/prompts"
	"github.com/Dee1911/Aspire.can/internal/services"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{validate.Field("date", "bad"), http.StatusBadRequest, "invalid_request"},
		{&prompts.InputError{Prompt: prompts.PromptGenerateTimeline, Missing: []string{"goals"}}, http.StatusBadRequest, "invalid_request"},
		{fmt.Errorf("get: %w", docstore.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("app: %w", services.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("task: %w", docstore.ErrConflict), http.StatusConflict, "conflict"},
		{errors.Join(services.ErrGenerationFailed, errors.New("503")), http.StatusBadGateway, "generation_failed"},
		{errors.Join(services.ErrUnauthorized, errors.New("expired")), http.StatusUnauthorized, "unauthorized"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		got := Classify(tc.err)
		if got.Status != tc.status || got.Code != tc.code {
			t.Errorf("%v: got %d/%s want %d/%s", tc.err, got.Status, got.Code, tc.status, tc.code)
		}
	}
}

func TestRespondAPIErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondAPIError(c, errors.New("pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Error.Message != "internal error" || env.Error.Code != "internal" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestRespondAPIErrorCarriesFieldsAndCurrent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	current := &tracker.Application{ID: "a1", Name: "UBC"}
	RespondAPIError(c, &services.UpdateError{Current: current, Err: validate.Field("tasks[1].id", "task ids must be unique")})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var body struct {
		Error   APIError            `json:"error"`
		Current tracker.Application `json:"current"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Fields["tasks[1].id"] == "" || body.Current.ID != "a1" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
