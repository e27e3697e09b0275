package event

import (
	"github.com/wagoodman/go-partybus"
)

const (
	typePrefix    = "mvnup"
	cliTypePrefix = typePrefix + "-cli"

	// Events from the mvnup library

	// InstallationStartedEvent is a partybus event that occurs when a maven installation has begun
	InstallationStartedEvent partybus.EventType = typePrefix + "-installation-started"

	// TaskStartedEvent is a generic, monitorable partybus event that occurs when a task has begun
	TaskStartedEvent partybus.EventType = typePrefix + "-task"

	// Events exclusively for the CLI

	// CLIReport is a partybus event that occurs when a command result is ready for final presentation to stdout
	CLIReport partybus.EventType = cliTypePrefix + "-report"

	// CLINotification is a partybus event that occurs when auxiliary information is ready for presentation to stderr
	CLINotification partybus.EventType = cliTypePrefix + "-notification"
)
