package command

import (
	"context"
	"strings"

	"github.com/anchore/clio"
	"github.com/spf13/cobra"

	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/internal"
	"github.com/mvnup/mvnup/internal/bus"
)

type ListAllConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func ListAll(app clio.Application) *cobra.Command {
	cfg := &ListAllConfig{
		AppConfig: option.DefaultAppConfig(),
	}

	return app.SetupCommand(&cobra.Command{
		Use:   "list-all",
		Short: "Print every installable maven version (oldest first, space separated)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListAll(cmd.Context(), *cfg)
		},
	}, cfg)
}

func runListAll(ctx context.Context, cfg ListAllConfig) error {
	d, _, err := cfg.ToDistribution()
	if err != nil {
		return err
	}

	versions, err := d.AvailableVersions(ctx)
	if err != nil {
		return err
	}

	bus.Report(strings.Join(internal.SortVersions(versions), " "))

	return nil
}
