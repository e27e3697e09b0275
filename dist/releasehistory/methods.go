package releasehistory

const ResolveMethod = "release-history"

func IsResolveMethod(method string) bool {
	switch method {
	case ResolveMethod, "release history", "releasehistory", "history":
		return true
	}
	return false
}
