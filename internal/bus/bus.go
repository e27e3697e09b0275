package bus

import "github.com/wagoodman/go-partybus"

var active *partybus.Bus

func Set(bus *partybus.Bus) {
	active = bus
}

func Get() *partybus.Bus {
	return active
}

func Publish(event partybus.Event) {
	if active != nil {
		active.Publish(event)
	}
}
