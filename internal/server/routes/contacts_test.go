package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
	portmocks "github.com/fr0stylo/proxitrace/internal/app/ports/mocks"
	appservices "github.com/fr0stylo/proxitrace/internal/app/services"
	"github.com/fr0stylo/proxitrace/internal/db"
)

func newContactTestServer(t *testing.T) (*echo.Echo, *portmocks.MockContactStore, *portmocks.MockKnownCaseStore) {
	t.Helper()

	contacts := portmocks.NewMockContactStore(t)
	knownCases := portmocks.NewMockKnownCaseStore(t)
	e := echo.New()
	NewContactRoutes(appservices.NewContactService(contacts, knownCases, nil)).RegisterRoutes(e)
	return e, contacts, knownCases
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListContactsParsesQuery(t *testing.T) {
	e, contacts, _ := newContactTestServer(t)

	day, _ := domain.ParseDay("2026-05-01")
	knownCase := int64(3)
	contacts.EXPECT().GetContacts(mock.Anything, ports.ContactQuery{
		Day:              day,
		Overlap:          2 * time.Hour,
		ContactThreshold: 3,
	}).Return([]domain.Contact{{
		ID:                  1,
		EphID:               domain.EphID("alpha"),
		Date:                day.Start().Add(10 * time.Hour),
		WindowCount:         4,
		AssociatedKnownCase: &knownCase,
	}}, nil)

	rec := serve(e, http.MethodGet, "/api/v1/contacts?day=2026-05-01&overlap=2h&threshold=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var got []contactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].EphID != "YWxwaGE=" || got[0].WindowCount != 4 {
		t.Fatalf("unexpected response: %+v", got)
	}
	if got[0].KnownCaseID == nil || *got[0].KnownCaseID != 3 {
		t.Fatalf("unexpected known case: %+v", got[0].KnownCaseID)
	}
}

func TestListContactsRejectsBadParameters(t *testing.T) {
	e, _, _ := newContactTestServer(t)

	for _, target := range []string{
		"/api/v1/contacts",
		"/api/v1/contacts?day=05-01-2026",
		"/api/v1/contacts?day=2026-05-01&overlap=soon",
		"/api/v1/contacts?day=2026-05-01&overlap=-1h",
		"/api/v1/contacts?day=2026-05-01&threshold=many",
	} {
		if rec := serve(e, http.MethodGet, target, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestCountContacts(t *testing.T) {
	e, contacts, _ := newContactTestServer(t)
	contacts.EXPECT().Count(mock.Anything).Return(int64(42), nil)

	rec := serve(e, http.MethodGet, "/api/v1/contacts/count", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":42`) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestLinkKnownCaseMapsNotFound(t *testing.T) {
	e, contacts, _ := newContactTestServer(t)
	contacts.EXPECT().AddKnownCase(mock.Anything, int64(5), int64(9)).Return(ports.ErrContactNotFound)

	rec := serve(e, http.MethodPut, "/api/v1/contacts/9/known-case", `{"knownCaseId":5}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	if rec := serve(e, http.MethodPut, "/api/v1/contacts/abc/known-case", `{"knownCaseId":5}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}

func TestLinkKnownCase(t *testing.T) {
	e, contacts, _ := newContactTestServer(t)
	contacts.EXPECT().AddKnownCase(mock.Anything, int64(5), int64(9)).Return(nil)

	rec := serve(e, http.MethodPut, "/api/v1/contacts/9/known-case", `{"knownCaseId":5}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateAndDeleteKnownCase(t *testing.T) {
	e, _, knownCases := newContactTestServer(t)

	knownCases.EXPECT().InsertKnownCase(mock.Anything, mock.MatchedBy(func(kc domain.KnownCase) bool {
		return kc.Day.String() == "2026-05-01" && string(kc.Key) == "key" && !kc.BatchTimestamp.IsZero()
	})).Return(int64(11), nil)
	rec := serve(e, http.MethodPost, "/api/v1/known-cases", `{"day":"2026-05-01","key":"a2V5"}`)
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"id":11`) {
		t.Fatalf("unexpected create response: %d %s", rec.Code, rec.Body.String())
	}

	knownCases.EXPECT().DeleteKnownCase(mock.Anything, int64(11)).Return(ports.ErrKnownCaseNotFound).Once()
	if rec := serve(e, http.MethodDelete, "/api/v1/known-cases/11", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSweepAndReset(t *testing.T) {
	e, contacts, _ := newContactTestServer(t)

	contacts.EXPECT().DeleteOldContacts(mock.Anything).Return(int64(3), nil)
	rec := serve(e, http.MethodPost, "/api/v1/retention/sweep", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"deleted":3`) {
		t.Fatalf("unexpected sweep response: %d %s", rec.Code, rec.Body.String())
	}

	contacts.EXPECT().EmptyStorage(mock.Anything).Return(nil)
	if rec := serve(e, http.MethodDelete, "/api/v1/contacts", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestStorageErrorsAreHidden(t *testing.T) {
	e, contacts, _ := newContactTestServer(t)
	contacts.EXPECT().GetAllMatchedContacts(mock.Anything).Return(nil, &ports.StorageError{Op: "get matched contacts", Err: errors.New("disk I/O error")})

	rec := serve(e, http.MethodGet, "/api/v1/contacts/matched", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "disk") {
		t.Fatalf("storage details leaked: %s", rec.Body.String())
	}
}

type fakeProbe struct {
	err error
}

func (p *fakeProbe) Ping(context.Context) error { return p.err }

func (p *fakeProbe) QueryLatencyStats() []db.QueryStats {
	return []db.QueryStats{{Name: "CountContacts", Count: 2}}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	probe := &fakeProbe{}
	NewHealthRoutes(probe).RegisterRoutes(e)

	if rec := serve(e, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	probe.err = errors.New("down")
	if rec := serve(e, http.MethodGet, "/healthz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	rec := serve(e, http.MethodGet, "/api/v1/debug/queries", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "CountContacts") {
		t.Fatalf("unexpected stats response: %d %s", rec.Code, rec.Body.String())
	}
}
