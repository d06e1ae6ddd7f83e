package client

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/adminapi/internal/common"
)

// DefaultExemptEndpoints never receive a bearer credential. The refresh
// endpoint in particular must not get a possibly expired access token.
var DefaultExemptEndpoints = []string{common.LoginPath, common.RefreshTokenPath}

// EndpointClassifier decides which request targets are exempt from
// credential attachment.
type EndpointClassifier struct {
	exempt []string
}

// NewEndpointClassifier uses DefaultExemptEndpoints when none are given.
func NewEndpointClassifier(exempt ...string) *EndpointClassifier {
	if len(exempt) == 0 {
		exempt = DefaultExemptEndpoints
	}
	return &EndpointClassifier{exempt: append([]string(nil), exempt...)}
}

// IsExempt reports whether the decoded path of rawURL contains one of the
// exempt endpoints. Matching is case-sensitive. A URL that does not parse is
// matched as given.
func (c *EndpointClassifier) IsExempt(rawURL string) bool {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	for _, e := range c.exempt {
		if strings.Contains(path, e) {
			return true
		}
	}
	return false
}
