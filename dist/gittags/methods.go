package gittags

const ResolveMethod = "git-tags"

func IsResolveMethod(method string) bool {
	switch method {
	case ResolveMethod, "git tags", "gittags", "git":
		return true
	}
	return false
}
