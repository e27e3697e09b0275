package command

import "os"

// environment variables honored for compatibility with asdf-style version
// manager shims
const (
	installVersionEnv = "ASDF_INSTALL_VERSION"
	installPathEnv    = "ASDF_INSTALL_PATH"
	downloadPathEnv   = "ASDF_DOWNLOAD_PATH"
)

// wantedVersion selects the version expression to act on: an explicit
// argument wins, then the shim environment, then the configured default.
func wantedVersion(versionArg, fallback string) string {
	if versionArg != "" {
		return versionArg
	}
	if fromEnv := os.Getenv(installVersionEnv); fromEnv != "" {
		return fromEnv
	}
	return fallback
}

// pathFromFlagOrEnv selects an explicit destination directory, if any.
func pathFromFlagOrEnv(flagValue, envKey string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envKey)
}
