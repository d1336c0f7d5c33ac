package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"corrlab/internal/commentary"
	"corrlab/internal/domain"
	"corrlab/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type analyzerStub struct {
	result *domain.AnalysisResult
	err    error
	got    service.AnalysisRequest
	calls  int
}

func (a *analyzerStub) Analyze(ctx context.Context, req service.AnalysisRequest) (*domain.AnalysisResult, error) {
	a.calls++
	a.got = req
	return a.result, a.err
}

type commentatorStub struct {
	got   commentary.Payload
	calls int
}

func (c *commentatorStub) Interpret(ctx context.Context, p commentary.Payload) commentary.Result {
	c.calls++
	c.got = p
	return commentary.Result{Text: "해석", Origin: commentary.OriginFallback, Strength: "강한", Direction: "양의"}
}

type limiterStub struct {
	allow bool
	err   error
	keys  []string
}

func (l *limiterStub) Allow(ctx context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func newTestRouter(h *Handler, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r, apiKey)
	return r
}

func newTestHandler(a Analyzer, c Commentator) *Handler {
	return New(trace.NewNoopTracerProvider().Tracer("handler-test"), a, c)
}

func postJSON(r http.Handler, path, body string, headers ...string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body["error"]
}

func TestAnalyzeSuccess(t *testing.T) {
	stub := &analyzerStub{result: &domain.AnalysisResult{
		Correlation: 0.42,
		Series1:     domain.Series{Name: "서울 날씨", Observations: []domain.Observation{{Date: "2024-01-01", Value: 3.5}}},
		Series2:     domain.Series{Name: "KOSPI 지수", Observations: []domain.Observation{{Date: "2024-01-01", Value: 2501.2}}},
		Name1:       "서울 날씨",
		Name2:       "KOSPI 지수",
	}}
	r := newTestRouter(newTestHandler(stub, &commentatorStub{}), "")

	w := postJSON(r, "/api/analyze", `{"dataSource1":"weather_seoul","dataSource2":"kospi_index","startDate":"2024-01-01","endDate":"2024-03-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.got.DataSource1 != "weather_seoul" || stub.got.EndDate != "2024-03-01" {
		t.Fatalf("request not forwarded: %+v", stub.got)
	}

	var body struct {
		Correlation     float64              `json:"correlation"`
		Data1           []domain.Observation `json:"data1"`
		Data2           []domain.Observation `json:"data2"`
		DataSource1Name string               `json:"dataSource1Name"`
		DataSource2Name string               `json:"dataSource2Name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Correlation != 0.42 || body.DataSource1Name != "서울 날씨" || body.DataSource2Name != "KOSPI 지수" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(body.Data1) != 1 || body.Data1[0].Date != "2024-01-01" || body.Data2[0].Value != 2501.2 {
		t.Fatalf("unexpected series: %+v %+v", body.Data1, body.Data2)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}
}

func TestAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", domain.NewValidationError(domain.MsgStartAfterEnd), http.StatusBadRequest, domain.MsgStartAfterEnd},
		{"unknown source", domain.NewUnknownSourceError("gold"), http.StatusBadRequest, domain.MsgUnknownSource + "gold"},
		{"insufficient overlap", fmt.Errorf("correlate: %w", domain.NewInsufficientOverlapError()), http.StatusBadRequest, domain.MsgInsufficientOverlap},
		{"degenerate", fmt.Errorf("correlate: %w", domain.NewDegenerateCorrelationError()), http.StatusBadRequest, domain.MsgCorrelationFailed},
		{"internal", errors.New("boom"), http.StatusInternalServerError, domain.MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(newTestHandler(&analyzerStub{err: tt.err}, &commentatorStub{}), "")
			w := postJSON(r, "/api/analyze", `{"dataSource1":"a","dataSource2":"b","startDate":"2024-01-01","endDate":"2024-01-02"}`)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if got := decodeError(t, w); got != tt.message {
				t.Fatalf("expected %q, got %q", tt.message, got)
			}
		})
	}
}

func TestAnalyzeMalformedBody(t *testing.T) {
	stub := &analyzerStub{}
	r := newTestRouter(newTestHandler(stub, &commentatorStub{}), "")

	w := postJSON(r, "/api/analyze", `{"dataSource1":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeError(t, w); got != domain.MsgMissingParams {
		t.Fatalf("unexpected message %q", got)
	}
	if stub.calls != 0 {
		t.Fatal("analyzer should not be called")
	}
}

func TestAnalyzeAISuccess(t *testing.T) {
	comm := &commentatorStub{}
	r := newTestRouter(newTestHandler(&analyzerStub{}, comm), "")

	w := postJSON(r, "/api/analyze-ai", `{"source1":"서울 날씨","source2":"KOSPI 지수","r":0,"n":0,"startDate":"2024-01-01"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if comm.got.Source1 != "서울 날씨" || comm.got.R != 0 || comm.got.N != 0 || comm.got.StartDate != "2024-01-01" {
		t.Fatalf("unexpected payload: %+v", comm.got)
	}

	var body commentary.Result
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Text != "해석" || body.Origin != "fallback" || body.Strength != "강한" || body.Direction != "양의" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestAnalyzeAIMissingField(t *testing.T) {
	tests := []struct {
		body  string
		field string
	}{
		{`{}`, "source1"},
		{`{"source1":"a"}`, "source2"},
		{`{"source1":"a","source2":"b","n":10}`, "r"},
		{`{"source1":"a","source2":"b","r":0.3}`, "n"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			comm := &commentatorStub{}
			r := newTestRouter(newTestHandler(&analyzerStub{}, comm), "")
			w := postJSON(r, "/api/analyze-ai", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if got := decodeError(t, w); got != domain.MsgMissingFieldPrefix+tt.field {
				t.Fatalf("unexpected message %q", got)
			}
			if comm.calls != 0 {
				t.Fatal("commentator should not be called")
			}
		})
	}
}

func TestAnalyzeAIRateLimited(t *testing.T) {
	h := newTestHandler(&analyzerStub{}, &commentatorStub{})
	lim := &limiterStub{allow: false}
	h.SetCommentaryLimiter(lim)
	r := newTestRouter(h, "")

	w := postJSON(r, "/api/analyze-ai", `{"source1":"a","source2":"b","r":0.1,"n":5}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if len(lim.keys) != 1 || lim.keys[0] == "" {
		t.Fatalf("expected client key, got %v", lim.keys)
	}
}

func TestAnalyzeAIRateLimiterErrorFailsOpen(t *testing.T) {
	comm := &commentatorStub{}
	h := newTestHandler(&analyzerStub{}, comm)
	h.SetCommentaryLimiter(&limiterStub{allow: true, err: errors.New("redis down")})
	r := newTestRouter(h, "")

	w := postJSON(r, "/api/analyze-ai", `{"source1":"a","source2":"b","r":0.1,"n":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if comm.calls != 1 {
		t.Fatal("expected commentator call")
	}
}

func TestListSources(t *testing.T) {
	r := newTestRouter(newTestHandler(&analyzerStub{}, &commentatorStub{}), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sources", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body []sourceInfo
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != len(domain.AllSources) {
		t.Fatalf("expected %d sources, got %d", len(domain.AllSources), len(body))
	}
	live := map[string]bool{}
	for _, s := range body {
		live[s.ID] = s.Live
	}
	if !live["btc_price"] || !live["kospi_index"] || live["weather_seoul"] || live["covid_cases"] {
		t.Fatalf("unexpected live flags: %v", live)
	}
}
