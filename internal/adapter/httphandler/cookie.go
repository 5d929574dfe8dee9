package httphandler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	cartCookieName   = "zp_cart"
	cartCookieMaxAge = 30 * 24 * time.Hour
)

// cartID returns the cart id of the shopper if the request carries one.
func cartID(r *http.Request) string {
	c, err := r.Cookie(cartCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// ensureCartID returns the shopper's cart id, issuing a new one in a
// cookie when the request carries none.
func ensureCartID(w http.ResponseWriter, r *http.Request) string {
	if id := cartID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cartCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
