package githubrelease

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionResolver_ResolveVersion(t *testing.T) {
	tests := []struct {
		name                 string
		config               VersionResolutionParameters
		version              string
		constraint           string
		releasesFetcher      func(ctx context.Context, user, repo string) ([]ghRelease, error)
		latestReleaseFetcher func(ctx context.Context, user, repo string) (*ghRelease, error)
		want                 string
		wantErr              require.ErrorAssertionFunc
	}{
		{
			name:    "latest will trigger a lookup for the latest release",
			version: "latest",
			want:    "3.9.9",
			latestReleaseFetcher: func(_ context.Context, user, repo string) (*ghRelease, error) {
				assert.Equal(t, "apache", user)
				assert.Equal(t, "maven", repo)
				return &ghRelease{
					Tag: "maven-3.9.9",
				}, nil
			},
			releasesFetcher: func(_ context.Context, user, repo string) ([]ghRelease, error) {
				t.Fatal("should not have been called")
				return nil, nil
			},
		},
		{
			name:    "fallback to fetching all releases if latest is not found",
			version: "latest",
			want:    "3.9.9",
			latestReleaseFetcher: func(_ context.Context, user, repo string) (*ghRelease, error) {
				return nil, nil
			},
			releasesFetcher: func(_ context.Context, user, repo string) ([]ghRelease, error) {
				return []ghRelease{
					{
						Tag: "maven-3.8.8",
					},
					{
						Tag: "maven-3.9.9",
					},
					{
						Tag: "maven-3.9.1",
					},
				}, nil
			},
		},
		{
			name:       "fallback to fetching all releases when the marked-latest release misses the constraint",
			version:    "latest",
			constraint: "< 3.9",
			want:       "3.8.8",
			latestReleaseFetcher: func(_ context.Context, user, repo string) (*ghRelease, error) {
				return &ghRelease{
					Tag: "maven-3.9.9",
				}, nil
			},
			releasesFetcher: func(_ context.Context, user, repo string) ([]ghRelease, error) {
				return []ghRelease{
					{
						Tag: "maven-3.8.8",
					},
					{
						Tag: "maven-3.9.9",
					},
				}, nil
			},
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
			name: "invalid repo format",
			config: VersionResolutionParameters{
				Repo: "not-a-repo",
			},
			version: "latest",
			wantErr: require.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == nil {
				tt.wantErr = require.NoError
			}
			v := NewVersionResolver(tt.config)
			v.latestReleaseFetcher = tt.latestReleaseFetcher
			v.releasesFetcher = tt.releasesFetcher

			got, err := v.ResolveVersion(context.Background(), tt.version, tt.constraint)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionResolver_AvailableVersions(t *testing.T) {
	v := NewVersionResolver(VersionResolutionParameters{})
	v.releasesFetcher = func(_ context.Context, user, repo string) ([]ghRelease, error) {
		return []ghRelease{
			{
				Tag: "maven-3.9.9",
			},
			{
				Tag:     "maven-4.0.0-rc-4",
				IsDraft: boolRef(true),
			},
			{
				Tag: "maven-parent-43",
			},
			{
				Tag: "maven-3.8.8",
			},
		}, nil
	}

	versions, err := v.AvailableVersions(context.Background())
	require.NoError(t, err)

	// drafts and non-version tags are skipped
	assert.Equal(t, []string{"3.9.9", "3.8.8"}, versions)
}

func TestVersionResolver_normalizeTag(t *testing.T) {
	tests := []struct {
		name   string
		config VersionResolutionParameters
		tag    string
		want   string
	}{
		{
			name: "strips the default prefix",
			tag:  "maven-3.9.9",
			want: "3.9.9",
		},
		{
			name: "leaves bare versions alone",
			tag:  "3.9.9",
			want: "3.9.9",
		},
		{
			name: "custom prefix",
			config: VersionResolutionParameters{
				TagPrefix: "v",
			},
			tag:  "v3.9.9",
			want: "3.9.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVersionResolver(tt.config)
			assert.Equal(t, tt.want, v.normalizeTag(tt.tag))
		})
	}
}
