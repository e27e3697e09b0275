package releasehistory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const historyPage = `
<table class="table">
<tr><th>Version</th><th>Release Date</th></tr>
<tr><td style="text-align: center"><b>3.9.9</b></td><td>2024-08-17</td></tr>
<tr><td style="text-align: center">3.9.8</td><td>2024-06-13</td></tr>
<tr><td style="text-align: center">3.8.8</td><td>2023-03-08</td></tr>
<tr><td style="text-align: center">3.9.8</td><td>duplicate row</td></tr>
<tr><td style="text-align: center">3.6.3</td><td>2019-11-25</td></tr>
</table>
`

func pageFetcher(page string) func(ctx context.Context, url string) (io.ReadCloser, error) {
	return func(_ context.Context, _ string) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(page)), nil
	}
}

func TestVersionResolver_ResolveVersion(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		constraint string
		page       string
		want       string
		wantErr    require.ErrorAssertionFunc
	}{
		{
			name:    "latest will trigger a page scrape",
			version: "latest",
			page:    historyPage,
			want:    "3.9.9",
		},
		{
			name:       "latest honors the constraint",
			version:    "latest",
			constraint: "< 3.9",
			page:       historyPage,
			want:       "3.8.8",
		},
		{
			name:    "semver input is honored as is",
			version: "3.8.8",
			want:    "3.8.8",
		},
		{
			name:    "snapshot input is honored as is",
			version: "4.1.0-SNAPSHOT",
			want:    "4.1.0-SNAPSHOT",
		},
		{
			name:    "non-semver input is honored as is",
			version: "bogus",
			want:    "bogus",
		},
		{
			name:    "empty page yields empty output",
			version: "latest",
			page:    "<html><body>no versions here</body></html>",
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == nil {
				tt.wantErr = require.NoError
			}
			v := NewVersionResolver(VersionResolutionParameters{})
			v.pageFetcher = pageFetcher(tt.page)

			got, err := v.ResolveVersion(context.Background(), tt.version, tt.constraint)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionResolver_AvailableVersions(t *testing.T) {
	v := NewVersionResolver(VersionResolutionParameters{})
	v.pageFetcher = pageFetcher(historyPage)

	versions, err := v.AvailableVersions(context.Background())
	require.NoError(t, err)

	// page order, deduplicated
	assert.Equal(t, []string{"3.9.9", "3.9.8", "3.8.8", "3.6.3"}, versions)
}

func TestIsResolveMethod(t *testing.T) {
	tests := []struct {
		name    string
		methods []string
		want    bool
	}{
		{
			name:    "valid",
			methods: []string{"release-history", "release history", "releasehistory", "history"},
			want:    true,
		},
		{
			name:    "invalid",
			methods: []string{"made up"},
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, method := range tt.methods {
				t.Run(method, func(t *testing.T) {
					assert.Equal(t, tt.want, IsResolveMethod(method))
				})
			}
		})
	}
}
