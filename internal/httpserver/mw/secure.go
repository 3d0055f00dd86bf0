package mw

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders sets conservative browser security headers on every response.
// Strict-Transport-Security is only sent in production, where TLS is expected
// to be terminated in front of the service.
func SecureHeaders(production bool) func(http.Handler) http.Handler {
	opts := secure.Options{
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		CustomBrowserXssValue:   "0",
		ReferrerPolicy:          "no-referrer",
		ContentSecurityPolicy:   "default-src 'none'; frame-ancestors 'none'",
	}
	if production {
		opts.STSSeconds = 15552000
		opts.STSIncludeSubdomains = true
		opts.ForceSTSHeader = true
	}
	return secure.New(opts).Handler
}
