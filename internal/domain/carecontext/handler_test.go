package carecontext

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/carenote/carenote/internal/aggregate"
	"github.com/carenote/carenote/internal/platform/fhir"
)

func testHandler(ds *aggregate.Dataset) *Handler {
	svc := NewService(&mockRepo{dataset: ds}, aggregate.NewRegistry(zerolog.Nop()), zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC) }
	return NewHandler(svc)
}

func doGet(t *testing.T, target string, params map[string]string, call func(echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := call(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestGetContext(t *testing.T) {
	h := testHandler(testDataset())
	rec := doGet(t, "/api/v1/patients/p1/context", map[string]string{"id": "p1"}, h.GetContext)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res ContextResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if res.PatientID != "p1" || res.Counts["conditions"] != 1 {
		t.Errorf("unexpected response: %+v", res)
	}
}

func TestGetContextFilters(t *testing.T) {
	ds := testDataset()
	ds.Conditions = append(ds.Conditions, fhir.Condition{
		ID:             "c2",
		Code:           &fhir.CodeableConcept{Text: "Flu"},
		ClinicalStatus: &fhir.CodeableConcept{Coding: []fhir.Coding{{Code: "resolved"}}},
	})
	h := testHandler(ds)
	rec := doGet(t, "/api/v1/patients/p1/context?conditionStatus=active&categories=conditions",
		map[string]string{"id": "p1"}, h.GetContext)
	var res ContextResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if res.Counts["conditions"] != 1 {
		t.Errorf("filtered count = %d, want 1", res.Counts["conditions"])
	}
	if len(res.Sections) != 1 || res.Sections[0].Title != "Conditions:" {
		t.Fatalf("selection not honored: %+v", res.Sections)
	}
	for _, item := range res.Sections[0].Items {
		if strings.Contains(item, "Flu") {
			t.Errorf("resolved condition leaked through filter: %q", item)
		}
	}
}

func TestGetPrompt(t *testing.T) {
	h := testHandler(testDataset())
	rec := doGet(t, "/api/v1/patients/p1/context/prompt", map[string]string{"id": "p1"}, h.GetPrompt)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res PromptResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !strings.Contains(res.Prompt, "Conditions:") {
		t.Errorf("prompt missing conditions section:\n%s", res.Prompt)
	}
}

func TestGetHistory(t *testing.T) {
	ds := &aggregate.Dataset{Observations: []fhir.Observation{
		{
			ID:                "o1",
			Code:              &fhir.CodeableConcept{Text: "Hemoglobin"},
			EffectiveDateTime: "2024-06-01",
			ValueQuantity:     &fhir.Quantity{Value: f64(13.5)},
		},
		{
			ID:                "o2",
			Code:              &fhir.CodeableConcept{Text: "Hemoglobin"},
			EffectiveDateTime: "2024-01-01",
			ValueQuantity:     &fhir.Quantity{Value: f64(12.8)},
		},
	}}
	h := testHandler(ds)
	rec := doGet(t, "/api/v1/patients/p1/observations/Hemoglobin/history?limit=1",
		map[string]string{"id": "p1", "code": "Hemoglobin"}, h.GetHistory)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res struct {
		Data struct {
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"data"`
		Total   int  `json:"total"`
		HasMore bool `json:"has_more"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if res.Total != 2 || !res.HasMore {
		t.Errorf("pagination wrong: total=%d has_more=%v", res.Total, res.HasMore)
	}
	if len(res.Data.Items) != 1 || res.Data.Items[0].ID != "o1" {
		t.Errorf("page wrong: %+v", res.Data.Items)
	}
}

func TestListCategories(t *testing.T) {
	h := testHandler(&aggregate.Dataset{})
	rec := doGet(t, "/api/v1/context/categories", nil, h.ListCategories)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cats []CategoryInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(cats) != 8 {
		t.Fatalf("got %d categories, want 8", len(cats))
	}
}
