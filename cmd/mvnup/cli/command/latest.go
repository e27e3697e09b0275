package command

import (
	"context"

	"github.com/anchore/clio"
	"github.com/spf13/cobra"

	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/internal/bus"
)

type LatestConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func Latest(app clio.Application) *cobra.Command {
	cfg := &LatestConfig{
		AppConfig: option.DefaultAppConfig(),
	}

	return app.SetupCommand(&cobra.Command{
		Use:   "latest",
		Short: "Print the latest available maven version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLatest(cmd.Context(), *cfg)
		},
	}, cfg)
}

func runLatest(ctx context.Context, cfg LatestConfig) error {
	d, intent, err := cfg.ToDistribution()
	if err != nil {
		return err
	}
	intent.Want = "latest"

	version, err := dist.ResolveVersion(ctx, d, *intent)
	if err != nil {
		return err
	}

	bus.Report(version)

	return nil
}
