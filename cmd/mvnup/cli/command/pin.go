package command

import (
	"context"
	"fmt"

	"github.com/anchore/clio"
	"github.com/anchore/go-logger"
	"github.com/spf13/cobra"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"
	"gopkg.in/yaml.v3"

	"github.com/mvnup/mvnup/cmd/mvnup/cli/internal/yamlpatch"
	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/event"
	"github.com/mvnup/mvnup/internal/bus"
	"github.com/mvnup/mvnup/internal/log"
)

type PinConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func Pin(app clio.Application) *cobra.Command {
	cfg := &PinConfig{
		AppConfig: option.DefaultAppConfig(),
	}

	return app.SetupCommand(&cobra.Command{
		Use:   "pin",
		Short: "Update the pinned maven version in the config file to the latest available (within any configured constraint)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPin(cmd.Context(), *cfg)
		},
	}, cfg)
}

func runPin(ctx context.Context, cfg PinConfig) error {
	if cfg.Config == "" {
		return fmt.Errorf("no config file to update (use --config)")
	}

	newVersion, err := getPinnedVersion(ctx, cfg)
	if err != nil {
		return err
	}
	if newVersion == nil {
		bus.Notify(fmt.Sprintf("Maven version pin is already up to date (%s)", cfg.Version.Want))
		return nil
	}

	if err := yamlpatch.Write(cfg.Config, versionPinPatcher{version: *newVersion}); err != nil {
		return fmt.Errorf("unable to update config file: %w", err)
	}

	bus.Notify(fmt.Sprintf("Pinned maven version to %s", *newVersion))

	return nil
}

var _ yamlpatch.Patcher = (*versionPinPatcher)(nil)

type versionPinPatcher struct {
	version string
}

func (p versionPinPatcher) PatchYaml(node *yaml.Node) error {
	wantNode := yamlpatch.FindVersionWantNode(node)
	if wantNode == nil {
		return fmt.Errorf("config file has no version.want entry")
	}
	wantNode.Value = p.version
	return nil
}

func getPinnedVersion(ctx context.Context, cfg PinConfig) (newVersion *string, err error) {
	prog := trackPinCmd()

	defer func() {
		if err != nil {
			prog.SetError(err)
		} else {
			prog.SetCompleted()
		}
	}()

	d, intent, err := cfg.ToDistribution()
	if err != nil {
		return nil, err
	}

	prog.Increment()

	intent.Want = "latest"
	resolved, err := dist.ResolveVersion(ctx, d, *intent)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve latest maven version: %w", err)
	}

	fields := logger.Fields{}
	if intent.Constraint != "" {
		fields["constraint"] = fmt.Sprintf("%q", intent.Constraint)
	}

	if resolved == cfg.Version.Want {
		fields["version"] = resolved
		log.FromContext(ctx).WithFields(fields).Debug("maven version pin is up to date")
		return nil, nil
	}

	fields["version"] = fmt.Sprintf("%s ➔ %s", cfg.Version.Want, resolved)
	log.FromContext(ctx).WithFields(fields).Info("updated maven version pin")

	return &resolved, nil
}

func trackPinCmd() *event.ManualStagedProgress {
	prog := event.NewManualStagedProgress(1)

	bus.Publish(partybus.Event{
		Type: event.TaskStartedEvent,
		Source: event.Task{
			Title: event.Title{
				Default:      "Resolve latest maven version",
				WhileRunning: "Resolving latest maven version",
				OnSuccess:    "Resolved latest maven version",
			},
		},
		Value: progress.StagedProgressable(prog),
	})

	return prog
}
