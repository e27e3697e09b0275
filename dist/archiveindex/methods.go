package archiveindex

const ResolveMethod = "archive-index"

func IsResolveMethod(method string) bool {
	switch method {
	case ResolveMethod, "archive index", "archiveindex", "archive":
		return true
	}
	return false
}
