package cookies

import "net/http"

// Write sets the session cookie. Cross-site frontends need SameSite=None,
// which browsers only accept with Secure; plain-HTTP development falls back
// to Lax.
func Write(w http.ResponseWriter, r *http.Request, name, token string, maxAge int) {
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, name string) {
	Write(w, r, name, "", -1)
}
