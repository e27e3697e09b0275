package command

import (
	"context"
	"fmt"

	"github.com/anchore/clio"
	"github.com/spf13/cobra"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/internal/bus"
)

type InstallConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	Path             string `json:"path" yaml:"path" mapstructure:"path"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func (c *InstallConfig) AddFlags(flags clio.FlagSet) {
	flags.StringVarP(&c.Path, "path", "p", "Directory to install into (defaults to $ASDF_INSTALL_PATH, then the managed inventory)")
}

func Install(app clio.Application) *cobra.Command {
	cfg := &InstallConfig{
		AppConfig: option.DefaultAppConfig(),
	}

	var versionArg string

	return app.SetupCommand(&cobra.Command{
		Use:   "install [VERSION]",
		Short: "Install a maven version",
		Long:  "Install a maven version (e.g. '3.9.9', '4.0.0-rc-4', or 'latest') by downloading, verifying, and extracting the official distribution archive",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				versionArg = args[0]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), *cfg, versionArg)
		},
	}, cfg)
}

func runInstall(ctx context.Context, cfg InstallConfig, versionArg string) error {
	d, intent, err := cfg.ToDistribution()
	if err != nil {
		return err
	}
	intent.Want = wantedVersion(versionArg, cfg.Version.Want)

	destDir := pathFromFlagOrEnv(cfg.Path, installPathEnv)

	var inv *mvnup.Inventory
	if destDir == "" {
		inv, err = mvnup.NewInventory(cfg.Root)
		if err != nil {
			return err
		}
	}

	version, mavenHome, err := dist.Install(ctx, d, *intent, inv, destDir)
	if err != nil {
		return fmt.Errorf("failed to install maven %q: %w", intent.Want, err)
	}

	bus.Notify(fmt.Sprintf("Installed maven %s to %s", version, mavenHome))

	return nil
}
