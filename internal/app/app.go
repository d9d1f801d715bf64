// Package app wires the CLI surface: flags in, exit codes out. Everything
// with engineering content lives below it in pipeline, reconcile, policy,
// report, and output.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/homelab-infra/portscope/internal/output"
	"github.com/homelab-infra/portscope/internal/pipeline"
	"github.com/homelab-infra/portscope/internal/policy"
	"github.com/homelab-infra/portscope/internal/proc"
	"github.com/homelab-infra/portscope/internal/report"
	"github.com/homelab-infra/portscope/internal/tui"
	"github.com/homelab-infra/portscope/pkg/model"
)

var (
	version   = ""
	commit    = ""
	buildDate = ""
)

func SetVersionBuildCommitString(v, c, d string) {
	version = v
	commit = c
	buildDate = d
}

func versionString() string {
	if version == "" {
		return "dev"
	}
	return version
}

var (
	jsonPath    string
	htmlOut     bool
	tableOut    bool
	tuiMode     bool
	noColor     bool
	checkPort   int
	policyPath  string
	execTimeout time.Duration
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portscope",
		Short: "Port inventory and reconciliation for a single host",
		Long: `portscope takes one snapshot of every listening TCP/UDP endpoint on this
host, cross-references each with docker port publications, classifies them
against a port-allocation policy, and writes a versioned JSON report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", versionString(), commit, buildDate),
		RunE:          run,
	}

	cmd.Flags().StringVar(&jsonPath, "json-path", "portscope.json", "path for the JSON report")
	cmd.Flags().BoolVar(&htmlOut, "html", false, "additionally write an HTML view next to the JSON report")
	cmd.Flags().BoolVar(&tableOut, "table", false, "print the report as a table to stdout")
	cmd.Flags().BoolVar(&tuiMode, "tui", false, "open the report in an interactive table instead of writing files")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().IntVar(&checkPort, "check-port", 0, "check a single port and exit: 0 free, 1 bound or indeterminate")
	cmd.Flags().StringVar(&policyPath, "policy", "", "YAML port-allocation policy file")
	cmd.Flags().DurationVar(&execTimeout, "timeout", pipeline.DefaultRuntimeTimeout, "timeout for the docker listing command")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("check-port") {
		runCheck(checkPort)
		return nil
	}

	pol := policy.Default()
	if policyPath != "" {
		var err error
		pol, err = policy.Load(policyPath)
		if err != nil {
			return err
		}
	}

	res := pipeline.Run(context.Background(), pipeline.Default(), execTimeout)
	if res.Err != nil {
		return fmt.Errorf("collect listening sockets: %w", res.Err)
	}

	meta := report.Meta{
		ScriptVersion: versionString(),
		GeneratedAt:   time.Now().UTC(),
		Docker:        res.Docker,
	}
	if host, err := os.Hostname(); err == nil {
		meta.Host = host
	}
	if low, high, err := proc.EphemeralRange(); err == nil {
		meta.EphemeralLow, meta.EphemeralHigh = low, high
		meta.HasEphemeral = true
	}

	doc := report.Build(res.Endpoints, res.Published, pol, meta)

	if tuiMode {
		return tui.Run(doc)
	}

	if err := output.WriteJSON(doc, jsonPath); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	fmt.Printf("JSON report written to %s\n", jsonPath)

	if htmlOut {
		html, err := output.RenderHTML(doc)
		if err != nil {
			return fmt.Errorf("render HTML view: %w", err)
		}
		htmlPath := htmlPathFor(jsonPath)
		if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write HTML view: %w", err)
		}
		fmt.Printf("HTML view written to %s\n", htmlPath)
	}

	if tableOut {
		fmt.Print(output.RenderTable(doc, !noColor))
	}

	return nil
}

// runCheck is the one place the tri-state collapses to an exit code, for
// shell-script consumption: only a confirmed free port exits 0.
func runCheck(port int) {
	outcome := report.CheckPort(proc.Collect, port)
	switch outcome {
	case model.PortFree:
		fmt.Printf("port %d is free\n", port)
		return
	case model.PortBound:
		fmt.Printf("port %d is bound\n", port)
	default:
		fmt.Fprintf(os.Stderr, "port %d state is indeterminate\n", port)
	}
	os.Exit(1)
}

func htmlPathFor(jsonPath string) string {
	if strings.HasSuffix(jsonPath, ".json") {
		return strings.TrimSuffix(jsonPath, ".json") + ".html"
	}
	return jsonPath + ".html"
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
