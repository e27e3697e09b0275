package cli

import (
	"os"

	"github.com/anchore/clio"
	"github.com/anchore/go-logger"

	"github.com/mvnup/mvnup/cmd/mvnup/cli/command"
	"github.com/mvnup/mvnup/cmd/mvnup/cli/internal/ui"
	handler "github.com/mvnup/mvnup/cmd/mvnup/cli/ui"
	"github.com/mvnup/mvnup/internal/bus"
	"github.com/mvnup/mvnup/internal/log"
	"github.com/mvnup/mvnup/internal/redact"
)

// New constructs the mvnup CLI application: root command, subcommands, UI
// selection, and the wiring that hoists clio-managed state (bus, redaction
// store, logger) into the internal packages.
func New(id clio.Identification) clio.Application {
	clioCfg := clio.NewSetupConfig(id).
		WithGlobalConfigFlag().   // add persistent -c <path> for reading an application config from
		WithGlobalLoggingFlags(). // add persistent -v and -q flags tied to the logging config
		WithConfigInRootHelp().   // --help on the root command renders the full application config in the help text
		WithUIConstructor(
			// select a UI based on the logging configuration and state of stdin (if stdin is a tty)
			func(cfg clio.Config) ([]clio.UI, error) {
				noUI := ui.None(cfg.Log.Quiet)
				if !cfg.Log.AllowUI(os.Stdin) || cfg.Log.Quiet {
					return []clio.UI{noUI}, nil
				}

				return []clio.UI{
					ui.New(cfg.Log.Quiet,
						handler.New(handler.DefaultHandlerConfig()),
					),
					noUI,
				}, nil
			},
		).
		WithLoggingConfig(clio.LoggingConfig{
			Level: logger.ErrorLevel,
		}).
		WithInitializers(
			func(state *clio.State) error {
				// clio is setting up and providing the bus, redact store, and logger to the application. Once loaded,
				// we can hoist them into the internal packages for global use.
				bus.Set(state.Bus)
				redact.Set(state.RedactStore)
				log.Set(state.Logger)

				// any github token used for release listing should never land in log output
				if token := os.Getenv("GITHUB_TOKEN"); token != "" {
					redact.Add(token)
				}

				return nil
			},
		)

	app := clio.New(*clioCfg)

	root := command.Root(app)

	root.AddCommand(
		clio.VersionCommand(id),
		command.Install(app),
		command.Download(app),
		command.Latest(app),
		command.ListAll(app),
		command.List(app),
		command.Check(app),
		command.Run(app),
		command.Pin(app),
	)

	return app
}
