package pipeline

import (
	"crypto/sha1" //nolint:gosec // content addressing, not cryptography
	"encoding/base64"

	"github.com/oayrilmaz/gridwire/pkg/domain"
)

// shareIDLen is the length of the content-addressed share identifier
const shareIDLen = 10

// ShareID computes the stable share identifier for a URL: the first 10
// characters of the base64url-encoded SHA-1 of the URL. Content-addressed,
// so repeated runs produce identical links for identical URLs.
func ShareID(url string) string {
	sum := sha1.Sum([]byte(url)) //nolint:gosec // identity hash only
	return base64.RawURLEncoding.EncodeToString(sum[:])[:shareIDLen]
}

// AssignShareIDs sets the share id on every item of the recent view and
// returns the shortlink side table keyed by share id
func AssignShareIDs(items []domain.Item) map[string]domain.ShareRecord {
	links := make(map[string]domain.ShareRecord, len(items))
	for i := range items {
		items[i].ShareID = ShareID(items[i].URL)
		links[items[i].ShareID] = items[i].ShareSnapshot()
	}
	return links
}
