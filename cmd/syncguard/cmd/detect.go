package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/readtrack/syncguard/internal/snapshot"
	"github.com/readtrack/syncguard/pkg/cache"
	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/engine"
	"github.com/readtrack/syncguard/pkg/errors"
	"github.com/readtrack/syncguard/pkg/logging"
)

var (
	detectTypes       []string
	detectMinSeverity string
	detectOutput      string
	detectShowStats   bool
	detectFailOn      bool
)

var detectCmd = &cobra.Command{
	Use:   "detect <snapshot-a> <snapshot-b>",
	Short: "Detect conflicts between two record snapshots",
	Long: `Detect pairs records from two snapshot files by id, runs the requested
detectors over each pair, and prints a conflict report.

Snapshots may be YAML or JSON, either a list of records or a single
record object.`,
	Args: cobra.ExactArgs(2),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringSliceVar(&detectTypes, "types", nil,
		"conflict types to detect (default: all)")
	detectCmd.Flags().StringVar(&detectMinSeverity, "min-severity", "",
		"only report conflicts at or above this severity (LOW, MEDIUM, HIGH, CRITICAL)")
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "yaml",
		"output format (yaml, json)")
	detectCmd.Flags().BoolVar(&detectShowStats, "stats", false,
		"include engine statistics in the output")
	detectCmd.Flags().BoolVar(&detectFailOn, "fail-on-conflict", false,
		"exit with status 1 when conflicts are found")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	setA, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}
	setB, err := snapshot.Load(args[1])
	if err != nil {
		return err
	}

	types, err := parseTypes(detectTypes)
	if err != nil {
		return err
	}

	eng, err := engine.New(
		engine.WithDetectorConfig(cfg.DetectorConfig()),
		engine.WithCache(cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)),
		engine.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	report, err := eng.DetectConflicts(ctx, setA, setB, types...)
	if err != nil {
		return err
	}

	if detectMinSeverity != "" {
		report = filterBySeverity(report, conflicts.Severity(detectMinSeverity))
	}

	if err := render(cmd, report, eng); err != nil {
		return err
	}

	if detectFailOn && report.HasConflicts() {
		os.Exit(1)
	}
	return nil
}

// parseTypes validates the --types allow-list against the registered
// conflict types.
func parseTypes(names []string) ([]conflicts.Type, error) {
	types := make([]conflicts.Type, 0, len(names))
	for _, name := range names {
		t := conflicts.Type(name)
		known := false
		for _, registered := range conflicts.AllTypes() {
			if t == registered {
				known = true
				break
			}
		}
		if !known {
			return nil, errors.NewValidationError("types", name, errors.ErrUnknownConflictType.Error())
		}
		types = append(types, t)
	}
	return types, nil
}

// filterBySeverity drops conflicts below the floor and re-summarizes so
// the reported risk score matches what is shown.
func filterBySeverity(report *conflicts.Report, floor conflicts.Severity) *conflicts.Report {
	if !floor.Valid() {
		return report
	}
	kept := []conflicts.Conflict{}
	for _, c := range report.Conflicts {
		if c.Severity.Weight() >= floor.Weight() {
			kept = append(kept, c)
		}
	}
	return &conflicts.Report{
		Conflicts:   kept,
		Summary:     conflicts.Summarize(kept),
		Performance: report.Performance,
	}
}

// renderedReport is the CLI output envelope.
type renderedReport struct {
	Report *conflicts.Report `json:"report" yaml:"report"`
	Stats  *engine.Stats     `json:"stats,omitempty" yaml:"stats,omitempty"`
}

func render(cmd *cobra.Command, report *conflicts.Report, eng *engine.Engine) error {
	out := renderedReport{Report: report}
	if detectShowStats {
		stats := eng.Stats()
		out.Stats = &stats
	}

	switch detectOutput {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		return errors.NewValidationError("output", detectOutput, "expected yaml or json")
	}
	return nil
}
