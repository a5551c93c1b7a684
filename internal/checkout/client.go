// Package checkout integrates PayPal order checkout: order creation against
// the plan catalog, capture after buyer approval, and tier activation.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	sandboxBaseURL = "https://api.sandbox.paypal.com"
	liveBaseURL    = "https://api.paypal.com"
)

// Client is a minimal PayPal Orders v2 client.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// New creates a client against the PayPal sandbox.
func New(clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      sandboxBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewWithBaseURL creates a client with a custom base URL.
// Use liveBaseURL in production; tests point it at a local stub.
func NewWithBaseURL(clientID, clientSecret, baseURL string) *Client {
	c := New(clientID, clientSecret)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// Live switches the client to the production endpoint.
func (c *Client) Live() *Client {
	c.baseURL = liveBaseURL
	return c
}

// accessToken exchanges client credentials for a bearer token. PayPal tokens
// are short-lived; one is fetched per API call rather than cached.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return body.AccessToken, nil
}

// Order is the result of CreateOrder. ApprovalURL is where the buyer
// approves the payment before capture.
type Order struct {
	OrderID     string
	ApprovalURL string
	Plan        Plan
}

type orderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
	AppContext    appContext     `json:"application_context"`
}

type purchaseUnit struct {
	Amount      amount `json:"amount"`
	Description string `json:"description"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type appContext struct {
	ReturnURL          string `json:"return_url"`
	CancelURL          string `json:"cancel_url"`
	ShippingPreference string `json:"shipping_preference"`
	UserAction         string `json:"user_action"`
}

// CreateOrder creates a CAPTURE-intent order for the given plan. An unknown
// plan fails with ErrUnknownPlan before any network call.
func (c *Client) CreateOrder(ctx context.Context, planID, returnURL, cancelURL string) (*Order, error) {
	plan, err := PlanByID(planID)
	if err != nil {
		return nil, err
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(orderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount:      amount{CurrencyCode: plan.Currency, Value: plan.Value},
			Description: plan.Description,
		}},
		AppContext: appContext{
			ReturnURL:          returnURL,
			CancelURL:          cancelURL,
			ShippingPreference: "NO_SHIPPING",
			UserAction:         "PAY_NOW",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call orders endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create order failed with status %d", resp.StatusCode)
	}

	var body struct {
		ID    string `json:"id"`
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	order := &Order{OrderID: body.ID, Plan: plan}
	for _, link := range body.Links {
		if link.Rel == "approve" {
			order.ApprovalURL = link.Href
		}
	}
	if order.OrderID == "" || order.ApprovalURL == "" {
		return nil, fmt.Errorf("order response missing id or approval link")
	}
	return order, nil
}

// Capture is the result of CaptureOrder. Success is true only for a 2xx
// response with status COMPLETED.
type Capture struct {
	Success       bool
	TransactionID string
	Status        string
	PayerEmail    string
	Amount        string
	Currency      string
}

// CaptureOrder captures an approved order. A non-2xx response or a status
// other than COMPLETED yields Success=false, not an error; errors are
// reserved for transport and decoding failures.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order id is required")
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/checkout/orders/"+orderID+"/capture", nil)
	if err != nil {
		return nil, fmt.Errorf("build capture request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call capture endpoint: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Payer  struct {
			EmailAddress string `json:"email_address"`
		} `json:"payer"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount amount `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode capture response: %w", err)
	}

	capture := &Capture{
		TransactionID: body.ID,
		Status:        body.Status,
		PayerEmail:    body.Payer.EmailAddress,
	}
	if len(body.PurchaseUnits) > 0 && len(body.PurchaseUnits[0].Payments.Captures) > 0 {
		amt := body.PurchaseUnits[0].Payments.Captures[0].Amount
		capture.Amount = amt.Value
		capture.Currency = amt.CurrencyCode
	}
	capture.Success = resp.StatusCode >= 200 && resp.StatusCode < 300 && capture.Status == "COMPLETED"
	return capture, nil
}
