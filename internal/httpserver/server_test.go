package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestStateTokenRoundTrip(t *testing.T) {
	token, err := IssueState("secret", "ana@example.com", "quarterly")
	if err != nil {
		t.Fatalf("IssueState() error: %v", err)
	}

	email, planID, err := ParseState("secret", token)
	if err != nil {
		t.Fatalf("ParseState() error: %v", err)
	}
	if email != "ana@example.com" || planID != "quarterly" {
		t.Fatalf("parsed %q/%q", email, planID)
	}

	if _, _, err := ParseState("other-secret", token); err == nil {
		t.Fatal("token verified under the wrong secret")
	}
	if _, _, err := ParseState("secret", "not-a-token"); err == nil {
		t.Fatal("garbage token parsed")
	}
}

type fakeActivator struct {
	email, orderID, planID string
	err                    error
	calls                  int
}

func (f *fakeActivator) ActivateUser(_ context.Context, email, orderID, planID string) error {
	f.calls++
	f.email, f.orderID, f.planID = email, orderID, planID
	return f.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestCheckoutSuccessActivates(t *testing.T) {
	activator := &fakeActivator{}
	handler := New(activator, "secret", testLogger())

	state, _ := IssueState("secret", "ana@example.com", "trial")
	req := httptest.NewRequest(http.MethodGet,
		"/checkout/success?token=ORDER-1&state="+url.QueryEscape(state), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if activator.calls != 1 {
		t.Fatalf("activator calls = %d, want 1", activator.calls)
	}
	if activator.email != "ana@example.com" || activator.orderID != "ORDER-1" || activator.planID != "trial" {
		t.Fatalf("activated %q/%q/%q", activator.email, activator.orderID, activator.planID)
	}
}

func TestCheckoutSuccessRejectsBadState(t *testing.T) {
	activator := &fakeActivator{}
	handler := New(activator, "secret", testLogger())

	forged, _ := IssueState("wrong-secret", "eve@example.com", "trial")
	req := httptest.NewRequest(http.MethodGet,
		"/checkout/success?token=ORDER-1&state="+url.QueryEscape(forged), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if activator.calls != 0 {
		t.Fatal("forged state reached the activator")
	}
}

func TestCheckoutSuccessActivationFailure(t *testing.T) {
	activator := &fakeActivator{err: errors.New("capture declined")}
	handler := New(activator, "secret", testLogger())

	state, _ := IssueState("secret", "ana@example.com", "trial")
	req := httptest.NewRequest(http.MethodGet,
		"/checkout/success?token=ORDER-1&state="+url.QueryEscape(state), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestCheckoutCancel(t *testing.T) {
	handler := New(&fakeActivator{}, "secret", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/checkout/cancel", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
