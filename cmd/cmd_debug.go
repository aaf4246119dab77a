// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jcodagnone/civicreport/authority"
	"github.com/jcodagnone/civicreport/location"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// isTerminal reports whether f is attached to a terminal. Cygwin and MSYS
// consoles count as terminals too.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

// locationClassification is printed by `debug locations`.
type locationClassification struct {
	Kind       string   `json:"kind"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
	OutOfRange bool     `json:"out_of_range,omitempty"`
}

func classify(raw string) locationClassification {
	parsed := location.Parse(raw)
	c := locationClassification{Kind: parsed.Kind.String(), OutOfRange: parsed.OutOfRange}

	if parsed.Kind == location.Coordinates {
		lat, lon := parsed.Point.Lat, parsed.Point.Lng
		c.Lat, c.Lon = &lat, &lon
	}

	return c
}

func classifyLines(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := scanner.Text()

		s, err := json.Marshal(classify(raw))
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s\t%s\n", raw, s)
	}

	return scanner.Err()
}

var debugLocationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Classify locations as coordinates or free text without geocoding",
	Long: `Reads one location per line and prints it followed by its classification.

$ echo "40.7128, -74.0060" | civicreport debug locations
40.7128, -74.0060	{"kind":"coordinates","lat":40.7128,"lon":-74.006}
	`,
	Run: func(_ *cobra.Command, _ []string) {
		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Enter locations to classify, one per line…")
		}

		if err := classifyLines(input, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
	},
}

var debugPromptCmd = &cobra.Command{
	Use:   "prompt <issue-type> <address> [description]",
	Short: "Print the prompt sent to the model",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(_ *cobra.Command, args []string) {
		description := ""
		if len(args) == 3 {
			description = args[2]
		}

		fmt.Println(authority.BuildPrompt(authority.CanonicalIssueType(args[0]), args[1], description))
	},
}

var debugValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a model answer read from stdin",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}

		info, err := authority.Validate(string(raw))
		if err != nil {
			fmt.Printf("%s\t%v\n", authority.KindOf(err), err)
			os.Exit(1)
		}

		s, err := json.Marshal(info)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("ok\t%s\n", s)
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugLocationsCmd)
	debugCmd.AddCommand(debugPromptCmd)
	debugCmd.AddCommand(debugValidateCmd)
}
