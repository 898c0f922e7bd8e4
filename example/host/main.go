package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joeydtaylor/quill/pkg/builder"
)

// announcement is the first stdout line, read by the GUI shell to find the bridge.
type announcement struct {
	Address string `json:"address"`
	Token   string `json:"token"`
	Events  string `json:"events"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quill host: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := builder.LoadHostConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := builder.NewHostLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inst, err := builder.AcquireInstance(ctx, cfg.DataDir, builder.InstanceWithLogger(logger))
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	if !inst.IsPrimary() {
		if err := inst.Forward(ctx, os.Args); err != nil {
			return fmt.Errorf("forward to running instance: %w", err)
		}
		logger.Info("Launch forwarded to primary instance", "component", "main", "event", "Forward", "pid", inst.Record().PID)
		return nil
	}
	defer inst.Release()

	win := builder.NewEventWindow(ctx,
		builder.EventWindowWithAllowedOrigins(cfg.AllowedOrigins...),
		builder.EventWindowWithLogger(logger),
	)
	defer win.Close()

	registry := builder.NewWindowRegistry(builder.WindowRegistryWithLogger(logger))
	if err := registry.Register(win); err != nil {
		return err
	}

	h := builder.NewHost(
		builder.HostWithAppID(cfg.AppID),
		builder.HostWithDataDir(cfg.DataDir),
		builder.HostWithStorageFolder(cfg.StorageFolder),
		builder.HostWithLogger(logger),
	)

	bridge := builder.NewBridge(ctx,
		builder.BridgeWithAddress(cfg.BridgeAddress),
		builder.BridgeWithToken(cfg.BridgeToken),
		builder.BridgeWithAuthRequired(cfg.AuthRequired),
		builder.BridgeWithAllowedOrigins(cfg.AllowedOrigins...),
		builder.BridgeWithCompressionMinBytes(cfg.CompressionMinBytes),
		builder.BridgeWithLogger(logger),
	)
	h.Register(bridge)
	bridge.Handle("/events", win)

	go func() {
		err := inst.Serve(ctx, func(ctx context.Context, argv []string) {
			registry.Redirect(ctx, argv)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Instance hand-off stopped", "component", "main", "event", "InstanceServe", "error", err)
		}
	}()

	go func() {
		select {
		case <-bridge.Ready():
			_ = json.NewEncoder(os.Stdout).Encode(announcement{
				Address: bridge.Addr(),
				Token:   cfg.BridgeToken,
				Events:  "ws://" + bridge.Addr() + "/events",
			})
		case <-ctx.Done():
		}
	}()

	if err := bridge.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bridge: %w", err)
	}
	logger.Info("Host stopped", "component", "main", "event", "Shutdown")
	return nil
}
