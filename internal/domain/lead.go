package domain

import (
	"strings"
	"time"
)

// Platform buckets are a fixed set so report shape stays stable between
// requests even when a bucket is empty.
const (
	PlatformFacebook  = "fb"
	PlatformInstagram = "ig"
	PlatformMessenger = "msg"
	PlatformOther     = "other"
)

// KnownPlatforms lists the platform buckets in report order.
var KnownPlatforms = []string{
	PlatformFacebook,
	PlatformInstagram,
	PlatformMessenger,
	PlatformOther,
}

// Lead is a single advertising inquiry forwarded from META Ads.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Area      string    `json:"area"`
	Location  string    `json:"location"`
	Mount     string    `json:"mount"`
	Timing    string    `json:"timing"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizePlatform maps a raw platform value into the known bucket set.
func NormalizePlatform(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case PlatformFacebook, "facebook":
		return PlatformFacebook
	case PlatformInstagram, "instagram":
		return PlatformInstagram
	case PlatformMessenger, "messenger":
		return PlatformMessenger
	default:
		return PlatformOther
	}
}
