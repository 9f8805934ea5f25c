// Capstone greeting web server
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/gokhanozkan/capstone/internal/config"
	"github.com/gokhanozkan/capstone/internal/web"
	"golang.org/x/term"
)

var (
	// command-line flags
	webaddr   string
	webport   int
	webdebug  bool
	pprofAddr string
	webhosts  string
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	webConfig := config.NewDefaultConfig()

	flag.StringVar(&webaddr, "webaddr", webConfig.ListenAddr, "Web server listen address (default: 0.0.0.0, all interfaces)")
	flag.IntVar(&webport, "webport", webConfig.ListenPort, "Web server port (default: 80)")
	flag.BoolVar(&webdebug, "debug", false, "Run gin in debug mode (route dump, verbose logging)")
	flag.StringVar(&pprofAddr, "pprof", "", "Start pprof web endpoint on this address, e.g. 127.0.0.1:51111 (default: off)")
	flag.StringVar(&webhosts, "allowedhosts", "", "Comma-separated Host header allowlist, others get 403 (default: accept any host)")
	flag.Parse()

	log.Printf("[MAIN]: Starting capstone web server (version: %s)", appVersion)

	// Override config with command-line flags if provided
	if webaddr != webConfig.ListenAddr {
		webConfig.ListenAddr = webaddr
		log.Printf("[WEB]: Overriding listen address with command-line flag: %s", webConfig.ListenAddr)
	}
	if webport != webConfig.ListenPort {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	}
	webConfig.Debug = webdebug
	webConfig.AllowedHosts = parseHostList(webhosts)
	if len(webConfig.AllowedHosts) > 0 {
		log.Printf("[WEB]: Restricting Host header to: %v", webConfig.AllowedHosts)
	}
	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// plain request log lines when stdout goes to a file or container log
		gin.DisableConsoleColor()
	}

	if pprofAddr != "" {
		log.Printf("[MAIN]: Starting pprof web endpoint on %s", pprofAddr)
		go prof.NewProf().PprofWeb(pprofAddr)
	}

	server := web.NewServer(webConfig)

	// Bind before going async so a busy or privileged port aborts startup
	if err := server.Listen(); err != nil {
		log.Fatalf("[WEB]: Startup failed: %v", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Serve(); err != nil && err != http.ErrServerClosed {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server started on http://%s. Press Ctrl+C to gracefully shutdown...", server.Addr())

	updateFileChan := make(chan bool, 1)
	go monitorUpdateFile(updateFileFlag, updateFileInterval, updateFileChan)

	// Wait for either shutdown signal, server error, or update file
	select {
	case sig := <-sigChan:
		log.Printf("[WEB]: Received %s, initiating graceful shutdown...", sig)
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Web server failed: %v", err)
	case <-updateFileChan:
		log.Printf("[WEB]: Update file detected, initiating graceful shutdown for update...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), webConfig.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Error during shutdown: %v", err)
		cancel()
		os.Exit(1)
	}

	log.Printf("[WEB]: Graceful shutdown completed")
} // end main
