package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"salespipe/internal/config"
	"salespipe/internal/metrics"
	"salespipe/internal/metrics/prompush"
	"salespipe/internal/pipeline"
	"salespipe/internal/storage"

	// register all backends with the storage factory.
	// config specifies which to use but we build in support for all of them.
	_ "salespipe/internal/storage/all"
)

// main is the entry point for the salespipe binary. The work lives in run so
// that error paths return through the deferred cleanups (metrics flush, store
// close) before the process exits.
func main() {
	os.Exit(run())
}

// run loads the config, optionally initializes a metrics backend, executes
// the pipeline against the configured store, and prints the analysis report.
func run() int {
	var (
		cfgPath           string
		dataDir           string
		dsn               string
		strictJoins       bool
		validate          bool
		metricsBackendFlg string
		pushGatewayURLFlg string
	)

	flag.StringVar(&cfgPath, "config", "", "pipeline config JSON path (defaults apply when empty)")
	flag.StringVar(&dataDir, "data", "", "directory with the source CSV files (overrides config)")
	flag.StringVar(&dsn, "db", "", "store DSN (overrides config)")
	flag.BoolVar(&strictJoins, "strict-joins", false, "abort when an order line references a missing header or product")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	verbose := flag.Bool("v", false, "enable verbose logs")
	flag.Parse()

	p := config.Default()
	if cfgPath != "" {
		var err error
		p, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if dataDir != "" {
		p.Data.Dir = dataDir
	}
	if dsn != "" {
		p.Storage.DB.DSN = dsn
	}
	if strictJoins {
		p.Publish.StrictJoins = true
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		fmt.Fprintln(os.Stderr, "configuration is invalid")
		return 1
	}
	if validate {
		log.Printf("configuration is valid")
		return 0
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(p.Job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			if *verbose {
				log.Printf("metrics: url=%v backend=%v job=%v", gwURL, backendName, p.Job)
			}
			metrics.SetBackend(b)
			// Flushes on failure exits too, so failure-status stage metrics
			// still reach the gateway.
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}
	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("pipeline: data=%s storage=%s dsn=%s strict_joins=%v",
			p.Data.Dir, p.Storage.Kind, p.Storage.DB.DSN, p.Publish.StrictJoins)
	}

	repo, err := storage.New(ctx, storage.Config{Kind: p.Storage.Kind, DSN: p.Storage.DB.DSN})
	if err != nil {
		log.Printf("open store: %v", err)
		return 1
	}
	defer repo.Close()

	pipe := pipeline.New(p, repo)
	if *verbose {
		pipe.Logf = log.Printf
	}
	rep, err := pipe.Run(ctx)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	fmt.Print(rep.Render())

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
	return 0
}
