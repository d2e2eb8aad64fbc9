package logging

import (
	"net/url"
	"strings"
)

// RedactedQuery replaces the query string of signed URLs in log output.
const RedactedQuery = "[REDACTED]"

// sensitiveQueryKeys are query parameter names that indicate a presigned or
// token-bearing asset URL. Matching is case-insensitive and substring-based
// so provider-specific prefixes (X-Amz-Signature, sig, token) are caught.
var sensitiveQueryKeys = []string{
	"signature",
	"sig",
	"token",
	"key",
	"expires",
	"credential",
}

// RedactSignedURL returns the input with its query string replaced by a
// placeholder when the value parses as a URL carrying signing parameters.
// Non-URL strings and URLs without sensitive parameters pass through
// unchanged.
//
// This is a pure function with no dependencies.
//
// Example:
//
//	RedactSignedURL("https://cdn.example.com/a.png?X-Amz-Signature=abc")
//	// "https://cdn.example.com/a.png?[REDACTED]"
func RedactSignedURL(value string) string {
	if !strings.Contains(value, "://") || !strings.Contains(value, "?") {
		return value
	}

	u, err := url.Parse(value)
	if err != nil || u.RawQuery == "" {
		return value
	}

	for key := range u.Query() {
		lower := strings.ToLower(key)
		for _, sensitive := range sensitiveQueryKeys {
			if strings.Contains(lower, sensitive) {
				u.RawQuery = ""
				return u.String() + "?" + RedactedQuery
			}
		}
	}
	return value
}
