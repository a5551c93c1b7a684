package checkout

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

const tokenBody = `{"access_token":"tok-123"}`

func stubClient(t *testing.T, handler func(req *http.Request) (*http.Response, error)) *Client {
	t.Helper()
	client := NewWithBaseURL("client-id", "client-secret", "https://paypal.test")
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path == "/v1/oauth2/token" {
				user, pass, ok := req.BasicAuth()
				if !ok || user != "client-id" || pass != "client-secret" {
					t.Errorf("token request basic auth = %q:%q", user, pass)
				}
				return jsonResponse(http.StatusOK, tokenBody), nil
			}
			if got := req.Header.Get("Authorization"); got != "Bearer tok-123" {
				t.Errorf("Authorization header = %q, want bearer token", got)
			}
			return handler(req)
		}),
	}
	return client
}

func TestPlanByID(t *testing.T) {
	for _, id := range []string{"trial", "quarterly", "biannual"} {
		plan, err := PlanByID(id)
		if err != nil {
			t.Fatalf("PlanByID(%q) error: %v", id, err)
		}
		if plan.ID != id || plan.Currency != "BRL" || plan.Value == "" {
			t.Fatalf("PlanByID(%q) = %+v", id, plan)
		}
	}
	if _, err := PlanByID("lifetime"); !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("unknown plan error = %v, want ErrUnknownPlan", err)
	}
}

func TestCreateOrder(t *testing.T) {
	var seenPath string
	client := stubClient(t, func(req *http.Request) (*http.Response, error) {
		seenPath = req.URL.Path
		return jsonResponse(http.StatusCreated, `{
			"id": "ORDER-1",
			"links": [
				{"href": "https://paypal.test/self", "rel": "self"},
				{"href": "https://paypal.test/approve?token=ORDER-1", "rel": "approve"}
			]
		}`), nil
	})

	order, err := client.CreateOrder(context.Background(), "quarterly",
		"https://lumi.test/checkout/success", "https://lumi.test/checkout/cancel")
	if err != nil {
		t.Fatalf("CreateOrder() error: %v", err)
	}
	if seenPath != "/v2/checkout/orders" {
		t.Fatalf("path = %q", seenPath)
	}
	if order.OrderID != "ORDER-1" {
		t.Errorf("OrderID = %q", order.OrderID)
	}
	if order.ApprovalURL != "https://paypal.test/approve?token=ORDER-1" {
		t.Errorf("ApprovalURL = %q", order.ApprovalURL)
	}
	if order.Plan.ID != "quarterly" {
		t.Errorf("Plan = %+v", order.Plan)
	}
}

func TestCreateOrderUnknownPlanSkipsNetwork(t *testing.T) {
	called := false
	client := stubClient(t, func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})
	// Fails before the token roundtrip too, so the transport stays untouched.
	client.httpClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, `{}`), nil
	})}

	_, err := client.CreateOrder(context.Background(), "lifetime", "r", "c")
	if !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("error = %v, want ErrUnknownPlan", err)
	}
	if called {
		t.Fatal("unknown plan still hit the network")
	}
}

func TestCaptureOrderCompleted(t *testing.T) {
	client := stubClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v2/checkout/orders/ORDER-1/capture" {
			t.Errorf("path = %q", req.URL.Path)
		}
		return jsonResponse(http.StatusCreated, `{
			"id": "TXN-9",
			"status": "COMPLETED",
			"payer": {"email_address": "ana@example.com"},
			"purchase_units": [{"payments": {"captures": [{"amount": {"currency_code": "BRL", "value": "29.70"}}]}}]
		}`), nil
	})

	capture, err := client.CaptureOrder(context.Background(), "ORDER-1")
	if err != nil {
		t.Fatalf("CaptureOrder() error: %v", err)
	}
	if !capture.Success {
		t.Fatal("completed capture reported Success=false")
	}
	if capture.TransactionID != "TXN-9" || capture.Status != "COMPLETED" {
		t.Errorf("capture = %+v", capture)
	}
	if capture.Amount != "29.70" || capture.Currency != "BRL" {
		t.Errorf("amount = %q %q", capture.Amount, capture.Currency)
	}
	if capture.PayerEmail != "ana@example.com" {
		t.Errorf("payer = %q", capture.PayerEmail)
	}
}

func TestCaptureOrderDeclined(t *testing.T) {
	client := stubClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"id": "TXN-9", "status": "DECLINED"}`), nil
	})

	capture, err := client.CaptureOrder(context.Background(), "ORDER-1")
	if err != nil {
		t.Fatalf("CaptureOrder() error: %v", err)
	}
	if capture.Success {
		t.Fatal("declined capture reported Success=true")
	}
}

func TestCaptureOrderServerError(t *testing.T) {
	client := stubClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, `{"status": "COMPLETED"}`), nil
	})

	capture, err := client.CaptureOrder(context.Background(), "ORDER-1")
	if err != nil {
		t.Fatalf("CaptureOrder() error: %v", err)
	}
	if capture.Success {
		t.Fatal("5xx capture reported Success=true")
	}
}

func TestAccessTokenFailure(t *testing.T) {
	client := NewWithBaseURL("client-id", "client-secret", "https://paypal.test")
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{}`), nil
		}),
	}

	if _, err := client.CaptureOrder(context.Background(), "ORDER-1"); err == nil {
		t.Fatal("expected error when token endpoint rejects credentials")
	}
}
