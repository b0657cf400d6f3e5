package models

import "strings"

// Platform classifies the client device that issued a request.
type Platform string

// The enumerated set of client platforms. Classification never produces a
// value outside this set.
const (
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "mobile-ios"
	PlatformAndroid Platform = "mobile-android"
	PlatformTablet  Platform = "tablet"
	PlatformDesktop Platform = "desktop"
	PlatformUnknown Platform = "unknown"
)

// knownPlatforms maps the override header values to their Platform.
var knownPlatforms = map[string]Platform{
	string(PlatformWeb):     PlatformWeb,
	string(PlatformIOS):     PlatformIOS,
	string(PlatformAndroid): PlatformAndroid,
	string(PlatformTablet):  PlatformTablet,
	string(PlatformDesktop): PlatformDesktop,
	string(PlatformUnknown): PlatformUnknown,
}

// DetectPlatform derives the client platform from an explicit override value
// and the raw user-agent string. It is a total function: every input pair
// maps to exactly one Platform.
//
// Precedence:
//  1. a non-empty override naming a known platform wins outright;
//  2. otherwise the user agent is sniffed;
//  3. otherwise PlatformUnknown.
func DetectPlatform(override, userAgent string) Platform {
	if p, ok := knownPlatforms[strings.ToLower(strings.TrimSpace(override))]; ok && override != "" {
		return p
	}

	ua := strings.ToLower(userAgent)
	switch {
	case ua == "":
		return PlatformUnknown
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return PlatformTablet
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipod"):
		return PlatformIOS
	case strings.Contains(ua, "android"):
		return PlatformAndroid
	case strings.Contains(ua, "windows") || strings.Contains(ua, "macintosh") || strings.Contains(ua, "x11"):
		return PlatformDesktop
	case strings.Contains(ua, "mozilla"):
		return PlatformWeb
	default:
		return PlatformUnknown
	}
}
