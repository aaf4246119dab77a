// Copyright 2025 The CivicReport Authors
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the Resolver over HTTP.
type Server struct {
	resolver *Resolver
	gatherer prometheus.Gatherer
}

// NewServer creates a Server. gatherer backs /metrics; nil disables it.
func NewServer(resolver *Resolver, gatherer prometheus.Gatherer) *Server {
	return &Server{
		resolver: resolver,
		gatherer: gatherer,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.POST("/api/detect-authorities", s.detectAuthorities)
	r.GET("/api/issue-types", s.listIssueTypes)
	r.GET("/healthz", func(ctx *gin.Context) { ctx.String(http.StatusOK, "ok") })

	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)

	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down server…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) detectAuthorities(ctx *gin.Context) {
	var report Report
	if err := ctx.ShouldBindJSON(&report); err != nil {
		log.Printf("detect-authorities: invalid body: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})

		return
	}

	info, err := s.resolver.Resolve(ctx.Request.Context(), report)
	if err != nil {
		writeError(ctx, err)

		return
	}

	ctx.JSON(http.StatusOK, info)
}

func (s *Server) listIssueTypes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, IssueCategories)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind Kind) int {
	switch kind {
	case KindInvalidInput, KindUnresolvable:
		return http.StatusBadRequest
	case KindNoVerifiedAuthority:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err without leaking backend or parser details; those
// were already logged by the Resolver.
func writeError(ctx *gin.Context, err error) {
	kind := KindOf(err)
	status := StatusFor(kind)

	message := msgInternal

	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		message = e.Message
	}

	if status == http.StatusInternalServerError {
		ctx.JSON(status, gin.H{"message": message, "error": kind.String()})

		return
	}

	ctx.JSON(status, gin.H{"message": message})
}
