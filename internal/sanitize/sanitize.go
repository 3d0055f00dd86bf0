// Package sanitize neutralizes active markup in user supplied text before
// it is echoed back to a client.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy is safe for concurrent use once built.
var policy = newPolicy()

// newPolicy allows common formatting markup (links, images, emphasis,
// lists, tables) and drops scripts, styles, event handler attributes and
// non http(s)/mailto URLs.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	return p
}

// Text returns s with active markup removed and stray angle brackets
// escaped. Applying it twice yields the same result as applying it once.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
