package internal

const (
	XXH64Algorithm  = "xxh64"
	SHA256Algorithm = "sha256"
)
