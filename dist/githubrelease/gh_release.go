package githubrelease

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/shurcooL/githubv4"

	"github.com/mvnup/mvnup/internal/log"
)

type ghRelease struct {
	Tag      string
	Date     *time.Time
	IsLatest *bool
	IsDraft  *bool
}

func fetchLatestReleaseFromGithubFacade(ctx context.Context, user, repo string) (*ghRelease, error) {
	url := fmt.Sprintf("https://github.com/%s/%s/releases/latest", user, repo)
	resp, err := downloadJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	type ghResponse struct {
		TagName string `json:"tag_name"`
	}

	var ghResp ghResponse
	if err := json.Unmarshal(content, &ghResp); err != nil {
		return nil, fmt.Errorf("unable to unmarshal response from %q: %w", url, err)
	}

	if ghResp.TagName == "" {
		return nil, nil
	}

	return &ghRelease{
		Tag: ghResp.TagName,
	}, nil
}

func downloadJSON(ctx context.Context, url string) (*http.Response, error) {
	client := &http.Client{
		Timeout: time.Second * 10,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).WithFields("http-status", resp.StatusCode).Tracef("http get [application/json] %q", url)

	return resp, nil
}

func fetchAllReleasesFromGithubV4API(ctx context.Context, user, repo string) ([]ghRelease, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable not set but is required to use the GitHub v4 API")
	}

	client := githubv4.NewClient(newRetryableGitHubClient(token))

	var query struct {
		Repository struct {
			Releases struct {
				PageInfo struct {
					EndCursor   githubv4.String
					HasNextPage bool
				}
				Nodes []struct {
					TagName     githubv4.String
					IsLatest    githubv4.Boolean
					IsDraft     githubv4.Boolean
					PublishedAt githubv4.DateTime
				}
			} `graphql:"releases(first:100, after:$releasesCursor)"` // note: newest releases are first
		} `graphql:"repository(owner:$repositoryOwner, name:$repositoryName)"`
	}
	variables := map[string]interface{}{
		"repositoryOwner": githubv4.String(user),
		"repositoryName":  githubv4.String(repo),
		"releasesCursor":  (*githubv4.String)(nil), // Null after argument to get first page.
	}

	var allReleases []ghRelease
	for {
		if err := client.Query(ctx, &query, variables); err != nil {
			return nil, err
		}

		for _, node := range query.Repository.Releases.Nodes {
			publishedAt := node.PublishedAt.Time
			allReleases = append(allReleases, ghRelease{
				Tag:      string(node.TagName),
				IsLatest: boolRef(bool(node.IsLatest)),
				IsDraft:  boolRef(bool(node.IsDraft)),
				Date:     &publishedAt,
			})
		}

		if !query.Repository.Releases.PageInfo.HasNextPage {
			break
		}
		variables["releasesCursor"] = githubv4.NewString(query.Repository.Releases.PageInfo.EndCursor)
	}

	sort.Slice(allReleases, func(i, j int) bool {
		// sort from latest to earliest
		if allReleases[i].Date == nil {
			return false
		}
		if allReleases[j].Date == nil {
			return true
		}
		return allReleases[i].Date.After(*allReleases[j].Date)
	})

	return allReleases, nil
}

func boolRef(b bool) *bool {
	return &b
}
