// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/jcodagnone/civicreport/authority"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	resolveReport authority.Report
	resolveFile   string
)

// resolveResult is one line of the resolve command output.
type resolveResult struct {
	Report    authority.Report `json:"report"`
	Authority *authority.Info  `json:"authority,omitempty"`
	Status    int              `json:"status"`
	Message   string           `json:"message,omitempty"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Find the authority responsible for one or more reports",
	Long: `Resolves a single report given with --issue-type, --location and
--description, or every report of a JSON Lines file given with --file (use -
for stdin). Reports are resolved one after the other and one JSON result per
report is printed to stdout.

$ civicreport resolve --issue-type Pothole --location "40.7128,-74.0060"
{"report":{...},"authority":{"department":"...","contactNumber":"..."},"status":200}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var reports []authority.Report

		switch {
		case resolveFile != "":
			var err error

			reports, err = readReports(resolveFile)
			if err != nil {
				return err
			}
		case resolveReport.IssueType != "" || resolveReport.Location != "":
			reports = []authority.Report{resolveReport}
		default:
			return errors.New("either --file or --issue-type and --location are required")
		}

		resolver, err := newResolver(cmd.Context(), pipelineOpts, nil)
		if err != nil {
			return err
		}

		return resolveAll(cmd.Context(), resolver, reports, os.Stdout)
	},
}

func readReports(path string) ([]authority.Report, error) {
	var r io.Reader = os.Stdin

	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening reports: %w", err)
		}
		defer f.Close()

		r = f
	}

	return decodeReports(r)
}

// decodeReports reads one JSON report per line, skipping blank lines.
func decodeReports(r io.Reader) ([]authority.Report, error) {
	var reports []authority.Report

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var report authority.Report
		if err := json.Unmarshal(line, &report); err != nil {
			return nil, fmt.Errorf("line %d: decoding report: %w", n, err)
		}

		reports = append(reports, report)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading reports: %w", err)
	}

	return reports, nil
}

// reportResolver is satisfied by *authority.Resolver.
type reportResolver interface {
	Resolve(ctx context.Context, report authority.Report) (*authority.Info, error)
}

// resolveAll resolves reports sequentially and writes one JSON line each.
// Pipeline failures are part of the output; only write errors abort.
func resolveAll(ctx context.Context, resolver reportResolver, reports []authority.Report, w io.Writer) error {
	var bar *progressbar.ProgressBar
	if len(reports) > 1 && isTerminal(os.Stderr) {
		bar = progressbar.NewOptions(len(reports),
			progressbar.OptionSetDescription("Resolving reports"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	enc := json.NewEncoder(w)

	for _, report := range reports {
		if err := ctx.Err(); err != nil {
			return err
		}

		result := resolveResult{Report: report, Status: http.StatusOK}

		info, err := resolver.Resolve(ctx, report)
		if err != nil {
			var e *authority.Error
			if errors.As(err, &e) {
				result.Message = e.Message
			} else {
				result.Message = err.Error()
			}

			result.Status = authority.StatusFor(authority.KindOf(err))
		} else {
			result.Authority = info
		}

		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addPipelineFlags(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveReport.IssueType, "issue-type", "", "Issue type, e.g. Pothole")
	resolveCmd.Flags().StringVar(&resolveReport.Location, "location", "", `"<lat>,<lon>" or a free-text address`)
	resolveCmd.Flags().StringVar(&resolveReport.Description, "description", "", "Description of the issue")
	resolveCmd.Flags().StringVarP(&resolveFile, "file", "f", "", "JSON Lines file with one report per line (- for stdin)")
}
