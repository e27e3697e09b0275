package bus

import (
	partybus "github.com/wagoodman/go-partybus"

	"github.com/mvnup/mvnup/event"
	"github.com/mvnup/mvnup/internal/redact"
)

// Report publishes the primary result of a command (what lands on stdout once
// the UI tears down).
func Report(report string) {
	Publish(partybus.Event{
		Type:  event.CLIReport,
		Value: redact.Apply(report),
	})
}

// Notify publishes a human-readable side note (what lands on stderr once the
// UI tears down).
func Notify(message string) {
	Publish(partybus.Event{
		Type:  event.CLINotification,
		Value: message,
	})
}
