// Command fieldmodel compiles field specification lists into feature layouts.
//
// Usage:
//
//	fieldmodel compile [-output json|yaml] [-comparator name]... <spec-file>
//	fieldmodel serve
//	fieldmodel version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/fieldmodel/internal/config"
	"github.com/kailas-cloud/fieldmodel/internal/domain/model"
	logpkg "github.com/kailas-cloud/fieldmodel/internal/logger"
	"github.com/kailas-cloud/fieldmodel/internal/metrics"
	"github.com/kailas-cloud/fieldmodel/internal/specfile"
	chiTransport "github.com/kailas-cloud/fieldmodel/internal/transport/chi"
	"github.com/kailas-cloud/fieldmodel/internal/usecase/compile"
	"github.com/kailas-cloud/fieldmodel/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "compile":
		err = runCompile(os.Args[2:], os.Stdout)
	case "serve":
		serve()
	case "version":
		fmt.Printf("fieldmodel %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	case "-h", "-help", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "fieldmodel:", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fieldmodel <compile|serve|version> [flags]")
	fmt.Fprintln(w, "  compile [-output json|yaml] [-comparator name]... [-max-fields n] <spec-file>")
	fmt.Fprintln(w, "  serve    run the HTTP API (config from config/$ENV.yaml)")
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// runCompile compiles one spec file and writes its layout to out.
func runCompile(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	output := fs.String("output", "json", "layout encoding: json or yaml")
	maxFields := fs.Int("max-fields", 0, "reject spec lists longer than this (0 = unlimited)")
	level := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	var comparators stringList
	fs.Var(&comparators, "comparator", "custom comparator name accepted by Custom specs (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("compile needs exactly one spec file")
	}

	logger, err := logpkg.NewLogger(config.GetEnv(), *level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	specs, err := specfile.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	svc := compile.NewService(newRegistry(comparators), *maxFields, logger)
	m, err := svc.Compile(context.Background(), specs)
	if err != nil {
		return err
	}
	return writeLayout(out, m.Layout(), *output)
}

func writeLayout(out io.Writer, layout model.Layout, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(layout, "", "  ")
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(layout); err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// newRegistry accepts the configured comparator names. Layout compilation
// only needs the names; scoring engines register real implementations.
func newRegistry(customComparators []string) *compile.Registry {
	opts := make([]compile.Option, 0, len(customComparators))
	for _, name := range customComparators {
		opts = append(opts, compile.WithCustomComparator(name, nil))
	}
	return compile.NewRegistry(opts...)
}

func serve() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting fieldmodel API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("max_fields", cfg.Compiler.MaxFields),
		zap.Strings("custom_comparators", cfg.Compiler.CustomComparators),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterCompileMetrics()
	metrics.RegisterHTTPMetrics()

	svc := compile.NewService(newRegistry(cfg.Compiler.CustomComparators), cfg.Compiler.MaxFields, logger)
	server := chiTransport.NewServer(svc, cfg.HTTP.MaxBodyBytes, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
