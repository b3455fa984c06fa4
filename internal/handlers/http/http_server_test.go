package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"uniLeaderboard/internal/domain/model"
	"uniLeaderboard/internal/domain/service"
)

type stubLeaderboards struct {
	lb       *model.Leaderboard
	err      error
	gotQuery model.LeaderboardQuery
}

func (s *stubLeaderboards) BuildLeaderboard(ctx context.Context, q model.LeaderboardQuery) (*model.Leaderboard, error) {
	s.gotQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return s.lb, nil
}

type stubArchive struct {
	swaps     []model.Swap
	err       error
	gotToken  string
	gotSince  uint64
	saveCalls int
}

func (s *stubArchive) SaveSwaps(ctx context.Context, network, token string, swaps []model.Swap) error {
	s.saveCalls++
	return nil
}

func (s *stubArchive) GetSwapsSince(ctx context.Context, token string, sinceBlock uint64) ([]model.Swap, error) {
	s.gotToken = token
	s.gotSince = sinceBlock
	if s.err != nil {
		return nil, s.err
	}
	return s.swaps, nil
}

func newTestServer(stub *stubLeaderboards) *Server {
	return NewServer(":0", stub, nil, nil)
}

func newTestServerWithArchive(stub *stubLeaderboards, archive *stubArchive) *Server {
	return NewServer(":0", stub, nil, archive)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubLeaderboards{})

	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestHandleLeaderboardRejectsNonPost(t *testing.T) {
	srv := newTestServer(&stubLeaderboards{})

	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHandleLeaderboardRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(&stubLeaderboards{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader("{not json"))
	srv.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestHandleLeaderboardMapsInvalidInputTo400(t *testing.T) {
	stub := &stubLeaderboards{err: fmt.Errorf("validate: %w", service.ErrInvalidTokenAddress)}
	srv := newTestServer(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader(`{"token_address":"0x1234"}`))
	srv.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid input, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message in the body")
	}
}

func TestHandleLeaderboardMapsPipelineFailureTo500(t *testing.T) {
	stub := &stubLeaderboards{err: fmt.Errorf("subgraph request failed: HTTP 502")}
	srv := newTestServer(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader(`{"token_address":"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"}`))
	srv.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for pipeline failure, got %d", rec.Code)
	}
}

func TestHandleSwapHistory(t *testing.T) {
	token := "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	archive := &stubArchive{swaps: []model.Swap{{
		ID:          "s1",
		Sender:      "0x1",
		Amount0:     "-1.5",
		Amount1:     "25",
		AmountUSD:   "43000",
		Transaction: model.Transaction{BlockNumber: "18400000"},
	}}}
	srv := newTestServerWithArchive(&stubLeaderboards{}, archive)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/swaps?token="+token+"&since_block=18000000", nil)
	srv.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if archive.gotToken != token {
		t.Errorf("unexpected token passed to archive: %s", archive.gotToken)
	}
	if archive.gotSince != 18_000_000 {
		t.Errorf("unexpected since_block passed to archive: %d", archive.gotSince)
	}

	var body struct {
		Token string       `json:"token"`
		Count int          `json:"count"`
		Swaps []model.Swap `json:"swaps"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode history body: %v", err)
	}
	if body.Count != 1 || len(body.Swaps) != 1 || body.Swaps[0].ID != "s1" {
		t.Errorf("unexpected history payload: %+v", body)
	}
}

func TestHandleSwapHistoryValidation(t *testing.T) {
	archive := &stubArchive{}
	srv := newTestServerWithArchive(&stubLeaderboards{}, archive)

	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/swaps?token=0x1234", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/swaps?token=0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2&since_block=soon", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed since_block, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/swaps", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for POST, got %d", rec.Code)
	}
}

func TestHandleSwapHistoryArchiveFailure(t *testing.T) {
	archive := &stubArchive{err: fmt.Errorf("connection refused")}
	srv := newTestServerWithArchive(&stubLeaderboards{}, archive)

	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/swaps?token=0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for an archive failure, got %d", rec.Code)
	}
}

func TestSwapHistoryRouteAbsentWithoutArchive(t *testing.T) {
	srv := newTestServer(&stubLeaderboards{})

	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/swaps?token=0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 when no archive is configured, got %d", rec.Code)
	}
}

func TestHandleLeaderboardSuccess(t *testing.T) {
	stub := &stubLeaderboards{
		lb: &model.Leaderboard{
			Traders: []model.TraderEntry{{
				Address:        "0x1",
				TotalBuys:      2,
				TotalVolumeUSD: "75.00",
				NetVolumeToken: "+50.0000",
			}},
			Summary: model.SummaryStats{
				TotalTraders:           1,
				TotalVolumeUSD:         "75.00",
				TotalBuyTransactions:   2,
				AverageVolumePerTrader: "75.00",
			},
		},
	}
	srv := newTestServer(stub)

	start := uint64(18_000_000)
	reqBody, _ := json.Marshal(map[string]any{
		"token_address": "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
		"start_block":   start,
		"limit":         5,
		"network":       "base",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", strings.NewReader(string(reqBody)))
	srv.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	// Request fields must pass through to the domain query unchanged.
	if stub.gotQuery.TokenAddress != "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2" {
		t.Errorf("unexpected token in query: %s", stub.gotQuery.TokenAddress)
	}
	if stub.gotQuery.StartBlock == nil || *stub.gotQuery.StartBlock != start {
		t.Errorf("unexpected start block in query: %v", stub.gotQuery.StartBlock)
	}
	if stub.gotQuery.Limit != 5 || stub.gotQuery.Network != "base" {
		t.Errorf("unexpected limit/network in query: %d/%s", stub.gotQuery.Limit, stub.gotQuery.Network)
	}

	var lb model.Leaderboard
	if err := json.NewDecoder(rec.Body).Decode(&lb); err != nil {
		t.Fatalf("failed to decode leaderboard body: %v", err)
	}
	if len(lb.Traders) != 1 || lb.Traders[0].NetVolumeToken != "+50.0000" {
		t.Errorf("unexpected leaderboard payload: %+v", lb)
	}
	if lb.Summary.TotalVolumeUSD != "75.00" {
		t.Errorf("unexpected summary payload: %+v", lb.Summary)
	}
}
