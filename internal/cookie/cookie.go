// Package cookie encodes and decodes the userCountry cookie the storefront
// uses to remember the shopper's shipping destination between visits.
package cookie

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/bazario/bazario/internal/domain"
)

// UserCountryName is the cookie holding the shopper's destination country.
const UserCountryName = "userCountry"

// Cookie values must survive the characters JSON uses, so the payload is
// URL-escaped JSON.

// SetUserCountry writes the destination country cookie.
func SetUserCountry(w http.ResponseWriter, info domain.CountryInfo, secure bool) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     UserCountryName,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// GetUserCountry reads the destination country cookie. Returns ok=false when
// the cookie is absent or unreadable; callers fall back to a default country.
func GetUserCountry(r *http.Request) (domain.CountryInfo, bool) {
	c, err := r.Cookie(UserCountryName)
	if err != nil {
		return domain.CountryInfo{}, false
	}

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return domain.CountryInfo{}, false
	}

	var info domain.CountryInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return domain.CountryInfo{}, false
	}
	if info.Code == "" {
		return domain.CountryInfo{}, false
	}
	return info, true
}
