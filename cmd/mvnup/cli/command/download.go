package command

import (
	"context"
	"fmt"

	"github.com/anchore/clio"
	"github.com/spf13/cobra"

	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/internal/bus"
)

type DownloadConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	Path             string `json:"path" yaml:"path" mapstructure:"path"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func (c *DownloadConfig) AddFlags(flags clio.FlagSet) {
	flags.StringVarP(&c.Path, "path", "p", "Directory to download into (defaults to $ASDF_DOWNLOAD_PATH)")
}

func Download(app clio.Application) *cobra.Command {
	cfg := &DownloadConfig{
		AppConfig: option.DefaultAppConfig(),
	}

	var versionArg string

	return app.SetupCommand(&cobra.Command{
		Use:   "download [VERSION]",
		Short: "Download a maven distribution archive without extracting it",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				versionArg = args[0]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd.Context(), *cfg, versionArg)
		},
	}, cfg)
}

func runDownload(ctx context.Context, cfg DownloadConfig, versionArg string) error {
	destDir := pathFromFlagOrEnv(cfg.Path, downloadPathEnv)
	if destDir == "" {
		return fmt.Errorf("no download directory provided (set --path or $%s)", downloadPathEnv)
	}

	d, intent, err := cfg.ToDistribution()
	if err != nil {
		return err
	}
	intent.Want = wantedVersion(versionArg, cfg.Version.Want)

	version, archivePath, err := dist.Download(ctx, d, *intent, destDir)
	if err != nil {
		return fmt.Errorf("failed to download maven %q: %w", intent.Want, err)
	}

	bus.Notify(fmt.Sprintf("Downloaded maven %s to %s", version, archivePath))

	return nil
}
