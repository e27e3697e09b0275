package githubrelease

const ResolveMethod = "github-release"

func IsResolveMethod(method string) bool {
	switch method {
	case ResolveMethod, "github release", "githubrelease", "github":
		return true
	}
	return false
}
