package domain

// Country is immutable reference data for shipping destinations.
type Country struct {
	ID   string
	Name string
	Code string
}

// CountryInfo is the destination context carried by the userCountry cookie:
// what geolocation knows about the visitor before checkout. City and Region
// are informational only; pricing keys off Name and Code.
type CountryInfo struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	City   string `json:"city"`
	Region string `json:"region"`
}
