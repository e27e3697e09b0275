package githubrelease

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

// newRetryableGitHubClient returns an http client that retries transient
// failures and attaches the given token to every attempt (the oauth2
// transport wraps the retrying transport, so retried requests keep their
// Authorization header).
func newRetryableGitHubClient(token string) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 3 * time.Second
	retryClient.Logger = nil

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   &retryablehttp.RoundTripper{Client: retryClient},
		},
	}
}
