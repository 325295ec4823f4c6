package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/supercomputers/shopd/config"
	"github.com/supercomputers/shopd/internal/adminapi"
	"github.com/supercomputers/shopd/internal/app"
	"github.com/supercomputers/shopd/internal/shopapi"
	"github.com/supercomputers/shopd/internal/webserver"
)

var (
	conffile = flag.String("conf", "/etc/shopd.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	webserver.Init(application)
	shopapi.InitRouter()
	adminapi.InitRouter()

	errch := make(chan error, 1)
	go func() {
		errch <- webserver.Listen()
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errch:
		if err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("web server error: %v", err)
		}
	case sig := <-sigch:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.S().Errorf("shutdown error: %v", err)
		}
	}
}
