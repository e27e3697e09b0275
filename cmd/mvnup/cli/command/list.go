package command

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/anchore/clio"
	"github.com/charmbracelet/lipgloss"
	"github.com/itchyny/gojq"
	"github.com/jedib0t/go-pretty/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mvnup/mvnup"
	"github.com/mvnup/mvnup/cmd/mvnup/cli/option"
	"github.com/mvnup/mvnup/dist"
	"github.com/mvnup/mvnup/internal/bus"
	"github.com/mvnup/mvnup/internal/log"
)

type ListConfig struct {
	Config           string `json:"config" yaml:"config" mapstructure:"config"`
	option.Format    `json:"" yaml:",inline" mapstructure:",squash"`
	option.AppConfig `json:"" yaml:",inline" mapstructure:",squash"`
}

func List(app clio.Application) *cobra.Command {
	cfg := &ListConfig{
		AppConfig: option.DefaultAppConfig(),
		Format: option.Format{
			Output:           "table",
			AllowableFormats: []string{"table", "json"},
		},
	}

	return app.SetupCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed maven versions and their status",
		Aliases: []string{
			"ls",
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), *cfg)
		},
	}, cfg)
}

type versionStatus struct {
	Version     string `json:"version"`
	Path        string `json:"path"`
	IsLatest    bool   `json:"isLatest"`    // is this the latest version the configured source knows about?
	HashIsValid bool   `json:"hashIsValid"` // does the installed launcher still have the recorded xxh64 hash?
	Error       error  `json:"error,omitempty"`
}

func runList(ctx context.Context, cfg ListConfig) error {
	inv, err := mvnup.NewInventory(cfg.Root)
	if err != nil {
		return err
	}

	latest := resolveLatestQuietly(ctx, cfg.AppConfig)

	entries := inv.Entries()

	var (
		statuses []versionStatus
		lock     sync.Mutex
	)

	g := errgroup.Group{}
	g.SetLimit(3)

	for i := range entries {
		entry := entries[i]

		g.Go(func() error {
			isHashValid, verifyErr := getInstallationStatus(entry)

			lock.Lock()
			defer lock.Unlock()

			statuses = append(statuses, versionStatus{
				Version:     entry.Version,
				Path:        entry.Path(),
				IsLatest:    latest != "" && entry.Version == latest,
				HashIsValid: isHashValid,
				Error:       verifyErr,
			})
			return nil
		})
	}

	// note: worker errors are carried in each status entry
	g.Wait() //nolint:errcheck

	return presentList(cfg.Format.Output, cfg.Format.JQCommand, statuses)
}

// resolveLatestQuietly asks the configured source for the latest version, but
// a failure (e.g. offline) should not prevent listing what is installed.
func resolveLatestQuietly(ctx context.Context, cfg option.AppConfig) string {
	d, intent, err := cfg.ToDistribution()
	if err != nil {
		log.FromContext(ctx).WithFields("error", err).Debug("unable to load distribution config")
		return ""
	}
	intent.Want = "latest"

	latest, err := dist.ResolveVersion(ctx, d, *intent)
	if err != nil {
		log.FromContext(ctx).WithFields("error", err).Debug("unable to resolve latest version")
		return ""
	}
	return latest
}

func getInstallationStatus(entry mvnup.InventoryEntry) (bool, error) {
	err := entry.Verify(true, false)
	if err != nil {
		var errMismatch *mvnup.ErrDigestMismatch
		if !errors.As(err, &errMismatch) {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

func presentList(format, jqCommand string, statuses []versionStatus) error {
	switch format {
	case "table", "":
		bus.Report(renderListTable(statuses))
	case "json":
		rendered, err := renderListJSON(statuses, jqCommand)
		if err != nil {
			return err
		}
		bus.Report(rendered)
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
	return nil
}

func renderListTable(statuses []versionStatus) string {
	if len(statuses) == 0 {
		return "no maven versions installed"
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false

	t.AppendHeader(table.Row{"Version", "Path", ""})

	rows := make([]table.Row, 0, len(statuses))
	for _, status := range statuses {
		rows = append(rows, getVersionStatusRow(status))
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i][0].(string) < rows[j][0].(string)
	})

	for _, row := range rows {
		t.AppendRow(row)
	}

	return t.Render()
}

func getVersionStatusRow(status versionStatus) table.Row {
	var (
		commentary string
		severity   int
	)

	switch {
	case status.Error != nil:
		commentary = status.Error.Error()
		severity = 2
	case !status.HashIsValid:
		commentary = "hash is invalid"
		severity = 2
	case status.IsLatest:
		commentary = "latest"
	}

	style := versionStatusStyle(severity)

	return table.Row{
		status.Version,
		status.Path,
		style.Render(commentary),
	}
}

func renderListJSON(statuses []versionStatus, jqCommand string) (string, error) {
	document := struct {
		Versions []versionStatus `json:"versions"`
	}{
		Versions: statuses,
	}

	by, err := json.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("unable to marshal list document: %w", err)
	}

	if jqCommand == "" {
		return string(by), nil
	}

	query, err := gojq.Parse(jqCommand)
	if err != nil {
		return "", fmt.Errorf("unable to parse jq command %q: %w", jqCommand, err)
	}

	var decoded any
	if err := json.Unmarshal(by, &decoded); err != nil {
		return "", fmt.Errorf("unable to unmarshal list document: %w", err)
	}

	var results []string
	iter := query.Run(decoded)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return "", fmt.Errorf("jq command failed: %w", err)
		}

		result, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("unable to marshal jq result: %w", err)
		}
		results = append(results, string(result))
	}

	return strings.Join(results, "\n"), nil
}

var (
	goodStatus      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))  // 10 = high intensity green (ANSI 16 bit color code)
	badStatus       = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // 214 = orange1 (ANSI 16 bit color code)
	reallyBadStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))   // 9 = high intensity red (ANSI 16 bit color code)
)

func versionStatusStyle(severity int) lipgloss.Style {
	switch severity {
	case 0:
		return goodStatus
	case 1:
		return badStatus
	}

	return reallyBadStatus
}
