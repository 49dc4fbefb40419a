package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"net/http"

	"github.com/raftlab/raft/clock"
	"github.com/raftlab/raft/raft"
	"github.com/raftlab/raft/store"
	"github.com/raftlab/raft/transport"
	"github.com/raftlab/raft/transport/grpcx"
)

func newServeCmd() *cobra.Command {
	var configPath, metricsAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "start this cohort member and block until terminated",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath, metricsAddr)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "raftd.yaml", "path to config file")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (empty disables)")
	return cmd
}

func serve(configPath, metricsAddr string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	fc, err := raft.LoadFileConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	self := transport.ServerID(fc.Self)
	cohort := fc.CohortIDs()

	reg := prometheus.NewRegistry()
	if metricsAddr != "" {
		go serveMetrics(metricsAddr, reg, logger)
	}

	tp := grpcx.NewTransport(addrMap(fc), fc.EngineConfig().ClientTimeout, logger)

	// Persistence format is out of scope (a named Non-goal); the reference
	// in-memory store is what raftd actually runs, restart-from-scratch.
	machine := store.NewStringAppendMachine()
	st := store.NewMemoryStore(machine)

	cl := clock.NewRealClock(time.Now().UnixNano())

	engine := raft.NewRaft(self, cohort, st, tp, cl, fc.EngineConfig(), logger, reg)

	lis, err := net.Listen("tcp", fc.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", fc.Listen, err)
	}
	grpcServer := grpcx.NewGRPCServer(grpcx.NewServer(engine.Deliver, logger))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc server stopped", zap.Error(err))
		}
	}()
	defer grpcServer.GracefulStop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("raftd starting", zap.String("self", string(self)), zap.String("listen", fc.Listen))
	return engine.Run(ctx)
}

func addrMap(fc *raft.FileConfig) map[transport.ServerID]string {
	out := make(map[transport.ServerID]string, len(fc.Cohort))
	for id, addr := range fc.Cohort {
		out[transport.ServerID(id)] = addr
	}
	return out
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
