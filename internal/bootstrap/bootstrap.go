package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"minihttp/internal/config"
	"minihttp/internal/metrics"
	"minihttp/internal/transport"
	"minihttp/internal/version"
)

type Bootstrap struct {
	Config     config.Config
	Metrics    metrics.Metrics
	Handler    transport.Handler
	ErrChan    chan error
	SignalChan chan os.Signal
}

func New(config config.Config) (*Bootstrap, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	m := metrics.New()

	return &Bootstrap{
		Config:     config,
		Metrics:    m,
		Handler:    transport.NewHandler(config, m),
		ErrChan:    make(chan error, 5),
		SignalChan: make(chan os.Signal, 1),
	}, nil
}

func startTCPServer(conf config.Config, handler transport.Handler, errChan chan<- error) {
	tcpServer := transport.NewTCPServer(conf.Host(), conf.Port(), handler)
	ln, err := tcpServer.Listen()
	if err != nil {
		errChan <- fmt.Errorf("failed to start tcp server: %w", err)
		return
	}
	log.Printf("Listening on %s", ln.Addr())
	if err = tcpServer.Serve(ln); err != nil {
		errChan <- fmt.Errorf("error when serving tcp server: %w", err)
	}
}

func startHTTPSServer(ctx context.Context, conf config.Config, handler transport.Handler, errChan chan<- error) {
	tlsCfg, err := transport.NewTLSConfig(ctx, conf)
	if err != nil {
		errChan <- fmt.Errorf("failed to create TLS config: %w", err)
		return
	}
	httpsServer := transport.NewHTTPSServer(conf.Host(), conf.TLSPort(), handler, tlsCfg)
	ln, err := httpsServer.Listen()
	if err != nil {
		errChan <- fmt.Errorf("failed to start https server: %w", err)
		return
	}
	log.Printf("Listening on %s (TLS)", ln.Addr())
	if err = httpsServer.Serve(ln); err != nil {
		errChan <- fmt.Errorf("error when serving https server: %w", err)
	}
}

func startMetrics(metricsPort string, m metrics.Metrics, errChan chan<- error) {
	metricsAddr := fmt.Sprintf("localhost:%s", metricsPort)
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	log.Printf("Starting metrics server on http://%s/metrics", metricsAddr)
	if err := http.ListenAndServe(metricsAddr, mux); err != nil {
		errChan <- fmt.Errorf("metrics server error: %v", err)
	}
}

func (b *Bootstrap) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signal.Notify(b.SignalChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(b.SignalChan)

	log.Println(version.GetVersion())

	go startTCPServer(b.Config, b.Handler, b.ErrChan)

	if b.Config.TLSEnabled() {
		go startHTTPSServer(ctx, b.Config, b.Handler, b.ErrChan)
	}

	if b.Config.MetricsEnabled() {
		go startMetrics(b.Config.MetricsPort(), b.Metrics, b.ErrChan)
	}

	log.Println("All services started successfully")

	select {
	case err := <-b.ErrChan:
		return fmt.Errorf("service error: %w", err)
	case sig := <-b.SignalChan:
		log.Printf("Received signal %s, initiating graceful shutdown", sig)
		cancel()
		return nil
	}
}
