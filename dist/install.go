package dist

import (
	"context"
	"errors"
	"fmt"

	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/event"
	"github.com/mvnup/mvnup/internal/bus"
	"github.com/mvnup/mvnup/internal/log"
)

var _ event.Installation = (*installation)(nil)

type installation struct {
	version string
	prog    *event.ManualStagedProgress
}

func (i installation) Version() string {
	return i.version
}

// Install resolves the version intent and installs that version into destDir
// (or into the inventory's version directory when destDir is empty, recording
// the result). Returns the resolved version and the maven home path.
func Install(ctx context.Context, d mvnup.Distribution, intent mvnup.VersionIntent, inv *mvnup.Inventory, destDir string) (string, string, error) {
	resolvedVersion, err := ResolveVersion(ctx, d, intent)
	if err != nil {
		return "", "", err
	}

	record := false
	if destDir == "" {
		if inv == nil {
			return "", "", fmt.Errorf("no destination directory or inventory provided")
		}

		err := Check(inv, resolvedVersion, d.ID(), VerifyConfig{VerifyXXH64Digest: true})
		if errors.Is(err, mvnup.ErrMultipleInstallations) {
			return "", "", err
		}
		if err == nil {
			log.FromContext(ctx).WithFields("version", resolvedVersion).Info("already installed")
			return resolvedVersion, inv.VersionPath(resolvedVersion), nil
		}

		log.FromContext(ctx).WithFields("version", resolvedVersion, "reason", err).Debug("installation check failed")

		destDir = inv.VersionPath(resolvedVersion)
		record = true
	}

	log.FromContext(ctx).WithFields("version", resolvedVersion, "destination", destDir).Info("installing")

	mon := installation{
		version: resolvedVersion,
		prog:    event.NewManualStagedProgress(2),
	}

	bus.Publish(partybus.Event{
		Type:   event.InstallationStartedEvent,
		Source: mon,
		Value:  progress.StagedProgressable(mon.prog),
	})

	mavenHome, err := install(ctx, d, resolvedVersion, destDir, inv, record, mon.prog)
	if err != nil {
		mon.prog.SetError(err)
		return "", "", err
	}

	mon.prog.SetCompleted()

	return resolvedVersion, mavenHome, nil
}

func install(ctx context.Context, d mvnup.Distribution, version, destDir string, inv *mvnup.Inventory, record bool, prog *event.ManualStagedProgress) (string, error) {
	prog.AtomicStage.Set("installing")

	mavenHome, err := d.InstallTo(ctx, version, destDir)
	if err != nil {
		return "", err
	}
	prog.Manual.Increment()

	if record {
		prog.AtomicStage.Set("recording")
		if err := inv.Add(version, mavenHome, d.ID()); err != nil {
			return "", fmt.Errorf("failed to record installation: %w", err)
		}
	}
	prog.Manual.Increment()
	prog.AtomicStage.Set("")

	return mavenHome, nil
}
