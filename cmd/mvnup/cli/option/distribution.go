package option

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/dist/apachedist"
	"github.com/mvnup/mvnup/dist/archiveindex"
	"github.com/mvnup/mvnup/dist/githubrelease"
	"github.com/mvnup/mvnup/dist/gittags"
	"github.com/mvnup/mvnup/dist/releasehistory"
)

func (c AppConfig) ToDistribution() (mvnup.Distribution, *mvnup.VersionIntent, error) {
	cfg, intent, err := c.ToDistConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read distribution config: %w", err)
	}

	d, err := dist.New(*cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to inflate distribution: %w", err)
	}
	return d, intent, nil
}

func (c AppConfig) ToDistConfig() (*dist.Config, *mvnup.VersionIntent, error) {
	installParams, err := deriveInstallParameters(c.Install.Method, c.Install.Parameters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive install parameters: %w", err)
	}

	resolveMethod, resolveParams, err := deriveVersionResolveParameters(c.Version.Method, c.Version.Parameters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive version resolution parameters: %w", err)
	}

	cfg := &dist.Config{
		InstallerConfig: dist.DetailConfig{
			Method:     c.Install.Method,
			Parameters: installParams,
		},
		VersionResolverConfig: dist.DetailConfig{
			Method:     resolveMethod,
			Parameters: resolveParams,
		},
	}

	intent := &mvnup.VersionIntent{
		Want:       c.Version.Want,
		Constraint: c.Version.Constraint,
	}

	return cfg, intent, nil
}

func deriveInstallParameters(installMethod string, installParams map[string]any) (any, error) {
	switch {
	case apachedist.IsInstallMethod(installMethod):
		var params apachedist.InstallerParameters
		if err := mapstructure.Decode(installParams, &params); err != nil {
			return nil, err
		}
		return params, nil
	case installMethod == "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown install method: %s", installMethod)
}

func deriveVersionResolveParameters(resolveMethod string, versionParameters map[string]any) (string, any, error) {
	switch {
	case releasehistory.IsResolveMethod(resolveMethod):
		var params releasehistory.VersionResolutionParameters
		if err := mapstructure.Decode(versionParameters, &params); err != nil {
			return resolveMethod, nil, err
		}
		return resolveMethod, params, nil

	case archiveindex.IsResolveMethod(resolveMethod):
		var params archiveindex.VersionResolutionParameters
		if err := mapstructure.Decode(versionParameters, &params); err != nil {
			return resolveMethod, nil, err
		}
		return resolveMethod, params, nil

	case githubrelease.IsResolveMethod(resolveMethod):
		var params githubrelease.VersionResolutionParameters
		if err := mapstructure.Decode(versionParameters, &params); err != nil {
			return resolveMethod, nil, err
		}
		return resolveMethod, params, nil

	case gittags.IsResolveMethod(resolveMethod):
		var params gittags.VersionResolutionParameters
		if err := mapstructure.Decode(versionParameters, &params); err != nil {
			return resolveMethod, nil, err
		}
		return resolveMethod, params, nil

	case resolveMethod == "":
		return resolveMethod, nil, nil
	}

	return resolveMethod, nil, fmt.Errorf("unknown version resolution method: %s", resolveMethod)
}
