package command

import (
	"time"

	"github.com/anchore/clio"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"

	internalhttp "github.com/mvnup/mvnup/internal/http"
	"github.com/mvnup/mvnup/internal/log"
)

func Root(app clio.Application) *cobra.Command {
	cmd := app.SetupRootCommand(&cobra.Command{})

	// wrap any existing PersistentPreRunE to inject dependencies into context
	existingPreRunE := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// inject the global logger into the context
		lgr := log.Get()
		ctx = log.WithLogger(ctx, lgr)

		// inject a configured HTTP client into the context
		httpClient := retryablehttp.NewClient()
		httpClient.RetryMax = 3
		// equal min and max wait yields a fixed backoff between attempts
		httpClient.RetryWaitMin = 2 * time.Second
		httpClient.RetryWaitMax = 2 * time.Second
		httpClient.Logger = internalhttp.NewLeveledLogger(lgr.Nested("component", "http-client"))
		ctx = internalhttp.WithHTTPClient(ctx, httpClient)

		cmd.SetContext(ctx)

		if existingPreRunE != nil {
			return existingPreRunE(cmd, args)
		}
		return nil
	}

	return cmd
}
