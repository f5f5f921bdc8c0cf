// Package visitor derives the three collector inputs (visitor id, device
// category, country) from raw request metadata. Each derivation is a pure
// function so the aggregation core can be exercised with synthetic values.
package visitor

import (
	"net"
	"net/http"
	"strings"

	"github.com/abhimanyuraj820-design/My-Portfolio-sub000/internal/domain"
)

// ipHeaders are checked in order of preference before falling back to
// RemoteAddr.
var ipHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
	"X-Client-IP",
}

// ClientIP extracts the requester's network address, honoring proxy headers.
// The returned string is the visitor identifier used for presence and dedup;
// it is not a stable cross-session identity.
func ClientIP(r *http.Request) string {
	for _, header := range ipHeaders {
		if ip := r.Header.Get(header); ip != "" {
			// X-Forwarded-For may carry a chain; the first hop is the client.
			if header == "X-Forwarded-For" {
				if first := firstIP(ip); first != "" {
					return first
				}
				continue
			}
			return strings.TrimSpace(ip)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// firstIP extracts the first entry from a comma-separated IP list.
func firstIP(ips string) string {
	if i := strings.IndexAny(ips, ", "); i >= 0 {
		return strings.TrimSpace(ips[:i])
	}
	return strings.TrimSpace(ips)
}

// mobileMarkers and tabletMarkers are the user-agent substrings that decide
// the device class. Tablets are checked first because tablet UAs frequently
// also contain "Mobile".
var (
	tabletMarkers = []string{"ipad", "tablet", "kindle", "silk", "playbook"}
	mobileMarkers = []string{"mobile", "iphone", "android", "blackberry", "opera mini", "windows phone"}
)

// DeviceFrom classifies a user-agent string as Mobile, Tablet or Desktop,
// defaulting to Desktop when nothing matches.
func DeviceFrom(userAgent string) domain.DeviceCategory {
	ua := strings.ToLower(userAgent)
	for _, marker := range tabletMarkers {
		if strings.Contains(ua, marker) {
			return domain.DeviceTablet
		}
	}
	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			return domain.DeviceMobile
		}
	}
	return domain.DeviceDesktop
}

// countryHeaders are the trusted edge headers that carry the requester's
// ISO 3166-1 alpha-2 country code.
var countryHeaders = []string{
	"CF-IPCountry",
	"X-Vercel-IP-Country",
	"X-Country-Code",
}

// CountryFrom resolves the requester's country display name from a trusted
// edge header. It returns "" when no header is present or the edge reported
// the code as unknown; the collector must never fabricate a country.
func CountryFrom(r *http.Request) string {
	for _, header := range countryHeaders {
		code := strings.ToUpper(strings.TrimSpace(r.Header.Get(header)))
		if code == "" || code == "XX" || code == "T1" {
			continue
		}
		if name, ok := countryNames[code]; ok {
			return name
		}
		return code
	}
	return ""
}

// countryNames maps the codes we actually see in traffic to display names.
// Codes outside this table pass through verbatim.
var countryNames = map[string]string{
	"AE": "United Arab Emirates",
	"AR": "Argentina",
	"AU": "Australia",
	"BD": "Bangladesh",
	"BR": "Brazil",
	"CA": "Canada",
	"CH": "Switzerland",
	"CN": "China",
	"DE": "Germany",
	"EG": "Egypt",
	"ES": "Spain",
	"FR": "France",
	"GB": "United Kingdom",
	"ID": "Indonesia",
	"IE": "Ireland",
	"IL": "Israel",
	"IN": "India",
	"IT": "Italy",
	"JP": "Japan",
	"KE": "Kenya",
	"KR": "South Korea",
	"LK": "Sri Lanka",
	"MX": "Mexico",
	"MY": "Malaysia",
	"NG": "Nigeria",
	"NL": "Netherlands",
	"NP": "Nepal",
	"PH": "Philippines",
	"PK": "Pakistan",
	"PL": "Poland",
	"RU": "Russia",
	"SA": "Saudi Arabia",
	"SE": "Sweden",
	"SG": "Singapore",
	"TH": "Thailand",
	"TR": "Turkey",
	"UA": "Ukraine",
	"US": "USA",
	"VN": "Vietnam",
	"ZA": "South Africa",
}
