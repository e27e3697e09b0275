package redact

import "github.com/anchore/go-logger/adapter/redact"

var store redact.Store

func Set(s redact.Store) {
	store = s
}

func Get() redact.Store {
	return store
}

func Add(values ...string) {
	if store == nil {
		// this is a programmer error: the application must set up the store
		// before any secrets are registered
		panic("cannot add redactions before the redact store has been set")
	}
	store.Add(values...)
}

func Apply(value string) string {
	if store == nil {
		return value
	}
	return store.RedactString(value)
}
