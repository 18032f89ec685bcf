package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/shoplens/shoplens/config"
	"github.com/shoplens/shoplens/internal/app"
	"github.com/shoplens/shoplens/internal/webserver"
)

var (
	conffile = flag.String("c", "shoplens.yml", "config yaml file")
	debug    = flag.Bool("x", false, "debug mode")
	showVer  = flag.Bool("v", false, "print version and exit")
)

const version = "v1.2.0"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("shoplens", version)
		return
	}

	cfg := config.LoadConfig(*conffile)
	if *debug {
		cfg.System.Debug = true
		cfg.Logger.Mode = "development"
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	server := webserver.NewServer(cfg,
		application.Catalog(),
		application.Users(),
		application.Journal(),
		application.Classifier(),
	)

	errc := make(chan error, 1)
	go func() {
		errc <- server.Start()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			zap.S().Errorf("web server stopped: %s", err)
		}
	case sig := <-sigc:
		zap.S().Infof("received signal %s, shutting down", sig)
		if err := server.Shutdown(); err != nil {
			zap.S().Errorf("shutdown error: %s", err)
		}
	}
}
