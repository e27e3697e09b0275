package command

import (
	"fmt"
	"path/filepath"

	"github.com/anchore/clio"
	"github.com/google/shlex"
	"github.com/scylladb/go-set/strset"
	"github.com/spf13/cobra"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/internal"
)

type RunConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func Run(app clio.Application) *cobra.Command {
	cfg := &RunConfig{
		AppConfig: option.DefaultAppConfig(),
	}

	var isHelpFlag bool

	return app.SetupCommand(&cobra.Command{
		Use:                "run [VERSION] [args]",
		Short:              "Run an installed maven version",
		DisableFlagParsing: true, // pass these as arguments to mvn
		Args:               cobra.ArbitraryArgs,
		PreRunE: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
				isHelpFlag = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isHelpFlag {
				return cmd.Help()
			}

			return runRun(*cfg, args)
		},
	}, cfg)
}

func runRun(cfg RunConfig, args []string) error {
	inv, err := mvnup.NewInventory(cfg.Root)
	if err != nil {
		return err
	}

	version, mvnArgs, err := selectRunVersion(inv, args)
	if err != nil {
		return err
	}

	entry, err := inv.Get(version)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("maven %s is not installed", version)
	}

	defaultArgs, err := shlex.Split(cfg.Run.Args)
	if err != nil {
		return fmt.Errorf("unable to parse configured run args: %w", err)
	}
	mvnArgs = append(defaultArgs, mvnArgs...)

	fullPath, err := filepath.Abs(entry.Launcher())
	if err != nil {
		return fmt.Errorf("unable to resolve path to mvn: %w", err)
	}

	return run(fullPath, mvnArgs)
}

// selectRunVersion interprets an optional leading version argument. When no
// version is given the sole installed version is used.
func selectRunVersion(inv *mvnup.Inventory, args []string) (string, []string, error) {
	installed := strset.New()
	for _, entry := range inv.Entries() {
		installed.Add(entry.Version)
	}

	if len(args) > 0 && (internal.IsSemver(args[0]) || installed.Has(args[0])) {
		return args[0], args[1:], nil
	}

	switch installed.Size() {
	case 0:
		return "", nil, fmt.Errorf("no maven versions installed")
	case 1:
		return installed.List()[0], args, nil
	}

	return "", nil, fmt.Errorf("multiple maven versions installed, specify one of: %v", internal.SortVersions(installed.List()))
}
