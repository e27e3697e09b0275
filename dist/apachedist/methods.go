package apachedist

import (
	"fmt"

	"github.com/mvnup/mvnup/dist/releasehistory"
)

const InstallMethod = "apache-dist"

func IsInstallMethod(method string) bool {
	switch method {
	case InstallMethod, "apache", "apache dist", "apachedist", "dist":
		return true
	}
	return false
}

// DefaultVersionResolverConfig returns the version resolver method and
// parameters to use when the configuration does not name one explicitly.
func DefaultVersionResolverConfig(installParams any) (string, any, error) {
	if _, ok := installParams.(InstallerParameters); !ok {
		return "", nil, fmt.Errorf("invalid installer parameters type %T", installParams)
	}

	return releasehistory.ResolveMethod, releasehistory.VersionResolutionParameters{}, nil
}
