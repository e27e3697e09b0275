package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/dist/apachedist"
	"github.com/mvnup/mvnup/dist/archiveindex"
	"github.com/mvnup/mvnup/dist/githubrelease"
	"github.com/mvnup/mvnup/dist/gittags"
	"github.com/mvnup/mvnup/dist/releasehistory"
)

func Test_deriveInstallParameters(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		params    map[string]any
		expected  any
		expectErr require.ErrorAssertionFunc
	}{
		{
			name:   "apache dist parameters",
			method: "apache-dist",
			params: map[string]any{
				"mirror-url": "https://mirror.example.com/{{.Version}}.tar.gz",
			},
			expected: apachedist.InstallerParameters{
				MirrorURL: "https://mirror.example.com/{{.Version}}.tar.gz",
			},
		},
		{
			name:     "empty method yields no parameters",
			method:   "",
			expected: nil,
		},
		{
			name:   "bad data shape",
			method: "apache-dist",
			params: map[string]any{
				"mirror-url": map[string]string{"bogus": "BogOsiTy"},
			},
			expectErr: require.Error,
		},
		{
			name:      "unknown method",
			method:    "made up",
			expectErr: require.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectErr == nil {
				tt.expectErr = require.NoError
			}
			result, err := deriveInstallParameters(tt.method, tt.params)
			tt.expectErr(t, err)
			if err == nil {
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func Test_deriveVersionResolveParameters(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		params    map[string]any
		expected  any
		expectErr require.ErrorAssertionFunc
	}{
		{
			name:   "release history parameters",
			method: "release-history",
			params: map[string]any{
				"url": "https://example.com/history.html",
			},
			expected: releasehistory.VersionResolutionParameters{
				URL: "https://example.com/history.html",
			},
		},
		{
			name:   "archive index parameters",
			method: "archive-index",
			params: map[string]any{
				"major-lines": []string{"maven-3"},
			},
			expected: archiveindex.VersionResolutionParameters{
				MajorLines: []string{"maven-3"},
			},
		},
		{
			name:   "github release parameters",
			method: "github-release",
			params: map[string]any{
				"repo": "apache/maven",
			},
			expected: githubrelease.VersionResolutionParameters{
				Repo: "apache/maven",
			},
		},
		{
			name:   "git tags parameters",
			method: "git-tags",
			params: map[string]any{
				"tag-prefix": "maven-",
			},
			expected: gittags.VersionResolutionParameters{
				TagPrefix: "maven-",
			},
		},
		{
			name:     "empty method passes through",
			method:   "",
			expected: nil,
		},
		{
			name:      "unknown method",
			method:    "made up",
			expectErr: require.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectErr == nil {
				tt.expectErr = require.NoError
			}
			method, result, err := deriveVersionResolveParameters(tt.method, tt.params)
			tt.expectErr(t, err)
			assert.Equal(t, tt.method, method)
			if err == nil {
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestAppConfig_ToDistConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.Version.Want = "3.9.9"
	cfg.Version.Constraint = "< 4"

	distCfg, intent, err := cfg.ToDistConfig()
	require.NoError(t, err)

	assert.Equal(t, apachedist.InstallMethod, distCfg.InstallerConfig.Method)
	assert.Equal(t, apachedist.InstallerParameters{}, distCfg.InstallerConfig.Parameters)
	assert.Equal(t, "3.9.9", intent.Want)
	assert.Equal(t, "< 4", intent.Constraint)
}

func TestAppConfig_ToDistribution(t *testing.T) {
	cfg := DefaultAppConfig()

	d, intent, err := cfg.ToDistribution()
	require.NoError(t, err)
	require.NotNil(t, d)
	require.NotNil(t, intent)

	assert.Equal(t, "latest", intent.Want)
	assert.NotEmpty(t, d.ID())
	assert.Contains(t, dist.VersionResolverMethods(), releasehistory.ResolveMethod)
}
