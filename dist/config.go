package dist

import (
	"context"
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/dist/apachedist"
	"github.com/mvnup/mvnup/dist/archiveindex"
	"github.com/mvnup/mvnup/dist/githubrelease"
	"github.com/mvnup/mvnup/dist/gittags"
	"github.com/mvnup/mvnup/dist/releasehistory"
)

var _ mvnup.Distribution = (*compositeDistribution)(nil)

type compositeDistribution struct {
	config Config
	mvnup.Installer
	mvnup.VersionResolver
}

type Config struct {
	InstallerConfig       DetailConfig
	VersionResolverConfig DetailConfig
}

type DetailConfig struct {
	Method     string
	Parameters any
}

func (c *Config) normalize() error {
	if c.InstallerConfig.Method == "" {
		c.InstallerConfig.Method = apachedist.InstallMethod
		if c.InstallerConfig.Parameters == nil {
			c.InstallerConfig.Parameters = apachedist.InstallerParameters{}
		}
	}

	// derive the version resolution method from the install method when not
	// named explicitly
	if c.VersionResolverConfig.Method == "" {
		resolveMethod, resolveParams, err := defaultVersionResolverConfig(c.InstallerConfig.Method, c.InstallerConfig.Parameters)
		if err != nil {
			return fmt.Errorf("failed to get default version resolution method: %w", err)
		}
		c.VersionResolverConfig.Method = resolveMethod
		c.VersionResolverConfig.Parameters = resolveParams
	}
	return nil
}

func New(c Config) (mvnup.Distribution, error) {
	if err := c.normalize(); err != nil {
		return nil, fmt.Errorf("failed to normalize distribution config: %w", err)
	}

	installer, err := getInstaller(c.InstallerConfig.Method, c.InstallerConfig.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to get installer: %w", err)
	}

	resolver, err := getResolver(c.VersionResolverConfig.Method, c.VersionResolverConfig.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to get version resolver: %w", err)
	}

	return &compositeDistribution{
		config:          c,
		Installer:       installer,
		VersionResolver: resolver,
	}, nil
}

func InstallMethods() []string {
	return []string{
		apachedist.InstallMethod,
	}
}

func VersionResolverMethods() []string {
	return []string{
		releasehistory.ResolveMethod,
		archiveindex.ResolveMethod,
		githubrelease.ResolveMethod,
		gittags.ResolveMethod,
	}
}

func getInstaller(method string, installParams any) (mvnup.Installer, error) {
	switch {
	case apachedist.IsInstallMethod(method):
		params, ok := installParams.(apachedist.InstallerParameters)
		if !ok {
			return nil, fmt.Errorf("invalid apache dist install parameters")
		}

		return apachedist.NewInstaller(params), nil
	}

	return nil, fmt.Errorf("unknown install method: %q", method)
}

func getResolver(method string, params any) (mvnup.VersionResolver, error) {
	switch {
	case releasehistory.IsResolveMethod(method):
		config, ok := params.(releasehistory.VersionResolutionParameters)
		if !ok {
			return nil, fmt.Errorf("invalid release history version resolution parameters")
		}
		return releasehistory.NewVersionResolver(config), nil
	case archiveindex.IsResolveMethod(method):
		config, ok := params.(archiveindex.VersionResolutionParameters)
		if !ok {
			return nil, fmt.Errorf("invalid archive index version resolution parameters")
		}
		return archiveindex.NewVersionResolver(config), nil
	case githubrelease.IsResolveMethod(method):
		config, ok := params.(githubrelease.VersionResolutionParameters)
		if !ok {
			return nil, fmt.Errorf("invalid github release version resolution parameters")
		}
		return githubrelease.NewVersionResolver(config), nil
	case gittags.IsResolveMethod(method):
		config, ok := params.(gittags.VersionResolutionParameters)
		if !ok {
			return nil, fmt.Errorf("invalid git tags version resolution parameters")
		}
		return gittags.NewVersionResolver(config), nil
	}

	return nil, fmt.Errorf("unknown version resolution method: %q", method)
}

func defaultVersionResolverConfig(installMethod string, installParams any) (string, any, error) {
	switch {
	case apachedist.IsInstallMethod(installMethod):
		return apachedist.DefaultVersionResolverConfig(installParams)
	}

	return "", nil, fmt.Errorf("unknown install method: %q", installMethod)
}

func (c compositeDistribution) ID() string {
	f, err := hashstructure.Hash(c.config, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil:      true,
		SlicesAsSets: true,
	})
	if err != nil {
		panic(fmt.Sprintf("could not hash distribution config: %+v", err))
	}

	return fmt.Sprintf("%016x", f)
}

// DownloadTo forwards to the installer when it supports download-only
// operation.
func (c compositeDistribution) DownloadTo(ctx context.Context, version, destDir string) (string, error) {
	if downloader, ok := c.Installer.(Downloader); ok {
		return downloader.DownloadTo(ctx, version, destDir)
	}
	return "", fmt.Errorf("install method %q does not support download-only operation", c.config.InstallerConfig.Method)
}
