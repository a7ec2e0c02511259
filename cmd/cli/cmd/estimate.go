// Package cmd - estimate command
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ghcost/core/engine"
	"ghcost/core/input"
	"ghcost/core/output"
	"ghcost/internal/config"
	"ghcost/internal/logging"
)

var (
	outputFormat string
	showDetails  bool
	noColor      bool
	strict       bool

	usage usageFlags
)

// usageFlags holds the usage declared on the command line
type usageFlags struct {
	teamSize      int
	publicRepo    bool
	runnerSpecs   []string
	machineSpecs  []string
	featureKeys   []string
	codeSecurity  bool
	secretProtect bool
	committers    int

	artifactStorage   float64
	artifactTransfer  float64
	largeFileStorage  float64
	largeFileTransfer float64

	storedEnvironments float64
	projectSizeGB      float64

	assistantPlan    string
	assistantSeats   int
	assistantOverage int
}

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [usage-file]",
	Short: "Price usage against every plan and recommend one",
	Long: `Price a monthly usage declaration against every plan.

The usage file can be YAML (.yaml, .yml), JSON (.json) or HCL (.hcl).
Without a file, usage is taken from flags.

Examples:
  ghcost estimate usage.yaml
  ghcost estimate --format markdown usage.hcl
  ghcost estimate --team-size 5 --runner linux:100:5 --runner macos:10:20
  ghcost estimate --team-size 3 --feature saml_sso --code-security --committers 2
  ghcost estimate --artifact-storage 4 --lfs-bandwidth 20 --assistant org_standard --assistant-seats 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	f.BoolVarP(&showDetails, "details", "d", false, "show usage totals, cost lines and feature statuses")
	f.BoolVar(&noColor, "no-color", false, "disable colored output")
	f.BoolVar(&strict, "strict", false, "reject values outside the domain limits instead of clamping them")

	f.IntVarP(&usage.teamSize, "team-size", "t", 1, "number of users")
	f.BoolVar(&usage.publicRepo, "public", false, "usage is for a public repository")
	f.StringArrayVar(&usage.runnerSpecs, "runner", nil, "runner as kind:jobs_per_day:duration_minutes (repeatable)")
	f.StringArrayVar(&usage.machineSpecs, "machine", nil, "dev machine as cores:developers:hours_per_week (repeatable)")
	f.StringSliceVar(&usage.featureKeys, "feature", nil, "required feature key (repeatable)")

	f.Float64Var(&usage.artifactStorage, "artifact-storage", 0, "artifact storage in GB")
	f.Float64Var(&usage.artifactTransfer, "artifact-transfer", 0, "artifact transfer in GB per month")
	f.Float64Var(&usage.largeFileStorage, "lfs-storage", 0, "large file storage in GB")
	f.Float64Var(&usage.largeFileTransfer, "lfs-bandwidth", 0, "large file bandwidth in GB per month")
	f.Float64Var(&usage.storedEnvironments, "stored-environments", 0, "stored dev environments per user")
	f.Float64Var(&usage.projectSizeGB, "project-size", 0, "average project size in GB")

	f.BoolVar(&usage.codeSecurity, "code-security", false, "enable the code security add-on")
	f.BoolVar(&usage.secretProtect, "secret-protection", false, "enable the secret protection add-on")
	f.IntVar(&usage.committers, "committers", 0, "active committers (default: team size)")

	f.StringVar(&usage.assistantPlan, "assistant", "", "assistant plan (individual_free, individual_standard, individual_premium, org_standard, org_premium)")
	f.IntVar(&usage.assistantSeats, "assistant-seats", 0, "assistant seats (default: team size)")
	f.IntVar(&usage.assistantOverage, "assistant-overage", 0, "premium requests beyond the allowance")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	format := cfg.Output.DefaultFormat
	if outputFormat != "" {
		format = outputFormat
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	details := cfg.Output.ShowDetails
	if cmd.Flags().Changed("details") {
		details = showDetails
	}
	formatter, err := output.New(f, output.Options{
		ShowDetails: details,
		NoColor:     noColor || cfg.Output.NoColor,
	})
	if err != nil {
		return err
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	var doc input.Document
	if len(args) > 0 {
		doc, err = input.LoadFile(args[0])
	} else {
		doc, err = usage.document()
	}
	if err != nil {
		return err
	}

	if strict {
		if err := input.Validate(cat, doc); err != nil {
			return err
		}
	}

	eng := engine.New(cat, engine.WithLogger(logging.Named("engine")))
	result, err := eng.Run(doc.Declaration())
	if err != nil {
		return fmt.Errorf("estimating: %w", err)
	}

	logging.Debug("estimate finished",
		zap.String("recommended", result.Recommended),
		zap.Int("plans", len(result.Breakdowns)),
	)

	return formatter.Render(cmd.OutOrStdout(), result)
}

// document builds a usage document from command-line flags. A section is
// only present when one of its flags is set.
func (u usageFlags) document() (input.Document, error) {
	doc := input.Document{
		TeamSize:         u.teamSize,
		PublicRepository: u.publicRepo,
		Features:         u.featureKeys,
	}

	for _, arg := range u.runnerSpecs {
		r, err := parseRunner(arg)
		if err != nil {
			return input.Document{}, err
		}
		doc.Compute = append(doc.Compute, r)
	}

	for _, arg := range u.machineSpecs {
		m, err := parseMachine(arg)
		if err != nil {
			return input.Document{}, err
		}
		doc.DevEnvironments = append(doc.DevEnvironments, m)
	}

	if u.artifactStorage != 0 || u.artifactTransfer != 0 {
		doc.Artifacts = &input.Storage{StorageGB: u.artifactStorage, TransferGB: u.artifactTransfer}
	}
	if u.largeFileStorage != 0 || u.largeFileTransfer != 0 {
		doc.LargeFiles = &input.Storage{StorageGB: u.largeFileStorage, TransferGB: u.largeFileTransfer}
	}
	if u.storedEnvironments != 0 || u.projectSizeGB != 0 {
		doc.DevStorage = &input.DevStorage{
			StoredEnvironments:   u.storedEnvironments,
			AverageProjectSizeGB: u.projectSizeGB,
		}
	}

	if u.codeSecurity || u.secretProtect || u.committers != 0 {
		doc.Security = &input.Security{
			Committers:       u.committers,
			CodeSecurity:     u.codeSecurity,
			SecretProtection: u.secretProtect,
		}
	}
	if u.assistantPlan != "" || u.assistantSeats != 0 || u.assistantOverage != 0 {
		doc.Assistant = &input.Assistant{
			Plan:            u.assistantPlan,
			Seats:           u.assistantSeats,
			OverageRequests: u.assistantOverage,
		}
	}

	return doc, nil
}

func parseRunner(arg string) (input.Runner, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return input.Runner{}, fmt.Errorf("invalid --runner %q: want kind:jobs_per_day:duration_minutes", arg)
	}
	jobs, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return input.Runner{}, fmt.Errorf("invalid --runner %q: jobs per day: %w", arg, err)
	}
	duration, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return input.Runner{}, fmt.Errorf("invalid --runner %q: duration: %w", arg, err)
	}
	return input.Runner{Kind: parts[0], JobsPerDay: jobs, DurationMinutes: duration}, nil
}

func parseMachine(arg string) (input.Machine, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return input.Machine{}, fmt.Errorf("invalid --machine %q: want cores:developers:hours_per_week", arg)
	}
	cores, err := strconv.Atoi(parts[0])
	if err != nil {
		return input.Machine{}, fmt.Errorf("invalid --machine %q: cores: %w", arg, err)
	}
	developers, err := strconv.Atoi(parts[1])
	if err != nil {
		return input.Machine{}, fmt.Errorf("invalid --machine %q: developers: %w", arg, err)
	}
	hours, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return input.Machine{}, fmt.Errorf("invalid --machine %q: hours: %w", arg, err)
	}
	return input.Machine{Cores: cores, Developers: developers, HoursPerWeek: hours}, nil
}
