package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazario/bazario/internal/domain"
)

func TestUserCountry_RoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	info := domain.CountryInfo{Name: "United States", Code: "US", City: "Portland", Region: "OR"}
	require.NoError(t, SetUserCountry(rec, info, true))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, UserCountryName, cookies[0].Name)
	assert.True(t, cookies[0].Secure)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	got, ok := GetUserCountry(req)
	require.True(t, ok)
	assert.Equal(t, info, got)
}

func TestGetUserCountry_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserCountry(req)
	assert.False(t, ok)
}

func TestGetUserCountry_Garbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: UserCountryName, Value: "not%2Djson"})

	_, ok := GetUserCountry(req)
	assert.False(t, ok)
}

func TestGetUserCountry_EmptyCode(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: UserCountryName, Value: "%7B%22name%22%3A%22Nowhere%22%7D"})

	_, ok := GetUserCountry(req)
	assert.False(t, ok)
}
