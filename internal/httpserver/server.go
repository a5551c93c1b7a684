// Package httpserver serves the PayPal return endpoints. The buyer leaves
// the bot for the approval page and lands back here; activation then shows
// up in the bot through the session.
package httpserver

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Activator finalizes a checkout for the user a state token was issued to.
type Activator interface {
	ActivateUser(ctx context.Context, email, orderID, planID string) error
}

func New(activator Activator, stateSecret string, log *logrus.Logger) http.Handler {
	r := httprouter.New()

	h := &checkoutHandler{activator: activator, secret: stateSecret, log: log}

	r.GET("/healthz", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})
	r.GET("/checkout/success", h.success)
	r.GET("/checkout/cancel", h.cancel)

	return r
}

type checkoutHandler struct {
	activator Activator
	secret    string
	log       *logrus.Logger
}

// success is the PayPal return URL. PayPal appends token=<orderID>; the
// state parameter is ours, issued at order creation.
func (h *checkoutHandler) success(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	orderID := r.URL.Query().Get("token")
	state := r.URL.Query().Get("state")
	if orderID == "" || state == "" {
		http.Error(w, "missing token or state", http.StatusBadRequest)
		return
	}

	email, planID, err := ParseState(h.secret, state)
	if err != nil {
		h.log.WithError(err).Warn("Rejected checkout return with bad state token")
		http.Error(w, "invalid state", http.StatusForbidden)
		return
	}

	if err := h.activator.ActivateUser(r.Context(), email, orderID, planID); err != nil {
		h.log.WithError(err).WithField("order_id", orderID).Error("Checkout activation failed")
		http.Error(w, "payment could not be confirmed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<h1>Payment confirmed 💎</h1><p>Your premium access is active. You can return to Lumi.</p>"))
}

func (h *checkoutHandler) cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.log.Info("Checkout cancelled by buyer")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<h1>Checkout cancelled</h1><p>No charge was made. You can return to Lumi.</p>"))
}
