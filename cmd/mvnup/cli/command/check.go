package command

import (
	"context"
	"sync"

	"github.com/anchore/clio"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/internal/log"
)

type CheckConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func Check(app clio.Application) *cobra.Command {
	cfg := &CheckConfig{
		AppConfig: option.DefaultAppConfig(),
	}

	return app.SetupCommand(&cobra.Command{
		Use:   "check [VERSION]...",
		Short: "Verify that installed maven versions are intact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), *cfg, args)
		},
	}, cfg)
}

func runCheck(ctx context.Context, cfg CheckConfig, versions []string) error {
	inv, err := mvnup.NewInventory(cfg.Root)
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		for _, entry := range inv.Entries() {
			versions = append(versions, entry.Version)
		}
	}

	verifyCfg := dist.VerifyConfig{
		VerifyXXH64Digest:  true,
		VerifySHA256Digest: cfg.Check.VerifyDigest,
	}

	var (
		errs *multierror.Error
		lock sync.Mutex
	)

	g := errgroup.Group{}
	g.SetLimit(3)

	for i := range versions {
		version := versions[i]

		g.Go(func() error {
			if err := dist.Check(inv, version, "", verifyCfg); err != nil {
				lock.Lock()
				errs = multierror.Append(errs, err)
				lock.Unlock()
				return nil
			}

			log.FromContext(ctx).WithFields("version", version).Info("maven installation verified")
			return nil
		})
	}

	g.Wait() //nolint:errcheck

	return errs.ErrorOrNil()
}
