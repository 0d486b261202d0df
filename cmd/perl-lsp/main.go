/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// perl-lsp is a Language Server Protocol front-end for Perl, exposing
// the recursive-descent parser and symbol index over stdio or a TCP
// socket (§6). Flag handling follows ECAL's cli/ecal.go usage-message
// convention, generalized from a tool-selector to a single long-running
// server with cobra/pflag (grounded on
// `theRebelliousNerd-codenerd/cmd/nerd/main.go` and
// `cmd_mangle_lsp.go`'s stdio server command).
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/perltooling/perl-lsp/config"
	"github.com/perltooling/perl-lsp/logging"
	"github.com/perltooling/perl-lsp/lsp/providers"
	"github.com/perltooling/perl-lsp/lsprouter"
	"github.com/perltooling/perl-lsp/workspace"
)

var (
	flagStdio     bool
	flagSocket    bool
	flagPort      int
	flagWorkspace string
	flagLogLevel  string
	flagWorkers   int
	flagHealth    bool
)

func main() {
	root := &cobra.Command{
		Use:     "perl-lsp",
		Short:   fmt.Sprintf("perl-lsp %s - Perl Language Server", config.ProductVersion),
		Version: config.ProductVersion,
		RunE:    run,
	}

	root.Flags().BoolVar(&flagStdio, "stdio", true, "serve over stdin/stdout (default)")
	root.Flags().BoolVar(&flagSocket, "socket", false, "serve over a TCP socket instead of stdio")
	root.Flags().IntVar(&flagPort, "port", 0, "TCP port to listen on (required with --socket)")
	root.Flags().StringVarP(&flagWorkspace, "workspace", "w", ".", "workspace root directory to index")
	root.Flags().StringVar(&flagLogLevel, "log", "info", "log level: debug, info, or error")
	root.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent request workers (0 = config default)")
	root.Flags().BoolVar(&flagHealth, "health", false, "print the recent request trace on SIGHUP and exit on shutdown")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	config.Reset()
	config.Set(config.LogLevel, flagLogLevel)
	if flagWorkers > 0 {
		config.Set(config.WorkerCount, flagWorkers)
	}

	log, err := logging.New(config.Str(config.LogLevel))
	if err != nil {
		return err
	}
	defer log.Sync()

	server, err := providers.NewServer(512, 256, log)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	router := lsprouter.NewRouter(config.Int(config.WorkerCount), 256, log)
	server.RegisterHandlers(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.LogInfo("received shutdown signal")
		cancel()
	}()

	if flagHealth {
		healthCh := make(chan os.Signal, 1)
		signal.Notify(healthCh, syscall.SIGHUP)
		go func() {
			for range healthCh {
				for _, entry := range router.RecentTrace() {
					log.LogInfo(entry)
				}
			}
		}()
	}

	watcher, err := workspace.New(flagWorkspace, server.Index(), server.IsOpen, log)
	if err != nil {
		return fmt.Errorf("initializing workspace watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("starting workspace watcher: %w", err)
	}
	defer watcher.Stop()

	transport := lsprouter.NewTransport(router)

	if flagSocket {
		if flagPort == 0 {
			return fmt.Errorf("--socket requires --port")
		}
		return serveSocket(ctx, transport, flagPort, log)
	}

	log.LogInfo("perl-lsp ", config.ProductVersion, " ready, serving on stdio")
	err = transport.Serve(ctx, os.Stdin, os.Stdout)
	if err == context.Canceled {
		log.LogInfo("perl-lsp stopped gracefully")
		return nil
	}
	return err
}

func serveSocket(ctx context.Context, transport *lsprouter.Transport, port int, log *logging.Logger) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", port, err)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	log.LogInfo("perl-lsp ", config.ProductVersion, " ready, listening on 127.0.0.1:", port)

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer conn.Close()

	err = transport.Serve(ctx, conn, conn)
	if err == context.Canceled {
		return nil
	}
	return err
}
