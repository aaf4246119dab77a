// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/civicreport/authority"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the authority detection API",
	Long: `Serves POST /api/detect-authorities for the report form, plus
GET /api/issue-types, GET /healthz and GET /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		resolver, err := newResolver(ctx, pipelineOpts, reg)
		if err != nil {
			return err
		}

		if os.Getenv(gin.EnvGinMode) == "" {
			gin.SetMode(gin.ReleaseMode)
		}

		fmt.Fprintf(os.Stderr, "🏛️  civicreport %s listening on http://%s\n", Version, serveAddr)

		return authority.NewServer(resolver, reg).Run(ctx, serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addPipelineFlags(serveCmd)
	serveCmd.Flags().StringVar(
		&serveAddr,
		"addr",
		getEnv("ADDR", "localhost:8080"),
		"Address to listen on",
	)
}
