package event

import (
	"github.com/wagoodman/go-progress"
)

type Title struct {
	Default      string
	WhileRunning string
	OnSuccess    string
	OnFail       string
}

type Task struct {
	Title   Title
	Context string
}

// Installation describes an in-flight maven installation.
type Installation interface {
	Version() string
}

type ManualStagedProgress struct {
	*progress.AtomicStage
	*progress.Manual
}

func NewManualStagedProgress(size int64) *ManualStagedProgress {
	return &ManualStagedProgress{
		AtomicStage: progress.NewAtomicStage(""),
		Manual:      progress.NewManual(size),
	}
}
