// cmd/bannerscan/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bannerscan/internal/adapters/output"
	"bannerscan/internal/adapters/probe"
	"bannerscan/internal/core/domain"
	"bannerscan/internal/core/ports"
	"bannerscan/internal/core/usecases"
	"bannerscan/internal/platform/config"
	"bannerscan/internal/platform/logx"
	"bannerscan/internal/platform/rate"
	"bannerscan/internal/platform/ui"
	"bannerscan/internal/platform/validator"
	"bannerscan/internal/platform/workerpool"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Configuración centralizada (help/version se resuelven dentro)
	cfg, err := config.Load(version, commit, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: bannerscan <start> [end] [options]")
		fmt.Fprintln(os.Stderr, "Try: bannerscan -h for help")
		os.Exit(2)
	}

	// 2. Logger compartido
	logger := logx.NewWithLevel(cfg.LogLevel())

	logger.Info("bannerscan starting",
		"version", version,
		"commit", commit,
		"date", date,
		"range", cfg.RangeLabel(),
		"ports", validator.FormatPorts(cfg.PortList),
		"concurrency", cfg.Core.Concurrency,
	)

	// 3. Contexto y señales para un cierre limpio
	ctx, cancel := rootContextWithSignals(cfg.Timeout())
	defer cancel()

	// 4. Rango y objetivos
	addrRange, err := cfg.Range()
	if err != nil {
		logger.Err(err, "phase", "validation")
		os.Exit(2)
	}
	if addrRange.IsEmpty() {
		logger.Warn("address range is empty, nothing to scan",
			"start", addrRange.Start.String(),
			"end", addrRange.End.String(),
		)
		return
	}

	targets, err := domain.CollectTargets(addrRange, cfg.PortList)
	if err != nil {
		logger.Err(err, "phase", "validation")
		os.Exit(2)
	}

	// 5. Probe
	probes, err := cfg.ProbeBytes()
	if err != nil {
		logger.Err(err, "phase", "validation")
		os.Exit(2)
	}

	prober, err := probe.NewBannerProbe(probe.Options{
		ConnectTimeout: cfg.Probe.ConnectTimeout,
		ReadTimeout:    cfg.Probe.ReadTimeout,
		ProbeLines:     probes,
		MaxLines:       cfg.Probe.MaxLines,
		ProxyURL:       cfg.Network.ProxyURL,
	}, logger)
	if err != nil {
		logger.Err(err, "phase", "probe-build")
		os.Exit(2)
	}

	// 6. Presentación y observers
	schedulerName := "fifo"
	if cfg.Network.Spread {
		schedulerName = "spread"
	}
	scheduler := workerpool.SchedulerByName(schedulerName)

	presenter := ui.New(ui.ParseUIMode(cfg.Output.UIMode))

	observers := ports.MultiObserver{
		output.NewProgressObserver(presenter, ui.ScanInfo{
			Range:          cfg.RangeLabel(),
			Ports:          validator.FormatPorts(cfg.PortList),
			Workers:        cfg.Core.Concurrency,
			ConnectTimeout: cfg.Probe.ConnectTimeout,
			ReadTimeout:    cfg.Probe.ReadTimeout,
			TaskDeadline:   cfg.Probe.TaskDeadline,
			Scheduler:      scheduler.Name(),
			RateLimit:      cfg.Network.Rate,
			Proxy:          cfg.Network.ProxyURL,
		}),
	}

	var stream *output.StreamingWriter
	if cfg.Output.Stream {
		stream = output.NewStreamingWriter(cfg.Output.Dir, cfg.RangeLabel(), logger)
		observers = append(observers, stream)
		logger.Info("streaming configured", "output_dir", cfg.Output.Dir)
	}

	// 7. Coordinador
	coord := usecases.NewCoordinator(prober, usecases.CoordinatorOptions{
		Concurrency:     cfg.Core.Concurrency,
		PerTaskDeadline: cfg.Probe.TaskDeadline,
		Scheduler:       scheduler,
		Limiter:         rate.NewPerSecond(cfg.Network.Rate),
		Observer:        observers,
		Logger:          logger,
	})

	// 8. Ejecutar scan
	start := time.Now()
	report, runErr := coord.Scan(ctx, targets)
	elapsed := time.Since(start)

	// 9. Errores de ejecución
	if runErr != nil {
		logger.Err(runErr, "phase", "run", "elapsed_ms", elapsed.Milliseconds())
		if !errors.Is(runErr, domain.ErrScanCanceled) {
			_ = presenter.Close()
			os.Exit(2)
		}
		// Continuar emitiendo resultados parciales
		presenter.Warning("scan interrupted, writing partial results")
	}
	_ = presenter.Close()

	if stream != nil {
		if err := stream.Err(); err != nil {
			logger.Warn("streaming output failed", "error", err.Error())
		} else if stream.Path() != "" {
			logger.Info("streaming file written", "path", stream.Path(), "results", stream.Written())
		}
	}

	// 10. Salidas
	if report != nil {
		if err := writeOutputs(cfg, report, logger); err != nil {
			logger.Err(err, "phase", "output")
			os.Exit(1)
		}

		stats := report.Stats()
		logger.Info("bannerscan finished",
			"elapsed_ms", elapsed.Milliseconds(),
			"banners", stats[domain.OutcomeBanner],
			"timeouts", stats[domain.OutcomeTimeout],
			"unreachable", stats[domain.OutcomeUnreachable],
			"dropped", report.Dropped,
		)
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// buildSinks crea un sink por formato configurado.
func buildSinks(cfg config.Config) []ports.ResultSink {
	sinks := make([]ports.ResultSink, 0, len(cfg.Output.Formats))
	for _, f := range cfg.Output.Formats {
		switch f {
		case config.FormatTable:
			sinks = append(sinks, output.NewTableSink(os.Stdout, cfg.Output.ShowAll))
		case config.FormatJSON:
			sinks = append(sinks, output.NewJSONFileSink(cfg.Output.Dir, cfg.RangeLabel()))
		case config.FormatYAML:
			sinks = append(sinks, output.NewYAMLFileSink(cfg.Output.Dir, cfg.RangeLabel()))
		}
	}
	return sinks
}

// writeOutputs escribe el reporte en todos los sinks en paralelo.
// Aislado de main para añadir formatos sin tocar el flujo.
func writeOutputs(cfg config.Config, report *domain.ScanReport, logger logx.Logger) error {
	sinks := buildSinks(cfg)

	var g errgroup.Group
	for _, sink := range sinks {
		g.Go(func() error {
			if err := sink.Write(report); err != nil {
				return fmt.Errorf("%s output: %w", sink.Name(), err)
			}
			if p, ok := sink.(interface{ Path() string }); ok && p.Path() != "" {
				logger.Info("report written", "format", sink.Name(), "path", p.Path())
			}
			return nil
		})
	}

	return g.Wait()
}

// rootContextWithSignals crea el contexto raíz con timeout opcional y
// cancelación por SIGINT/SIGTERM. El cancel devuelto libera todo.
func rootContextWithSignals(timeout time.Duration) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeout > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), timeout)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanupCancel := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanupCancel
}
