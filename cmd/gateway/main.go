package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prosthetix/reports-platform/gateway"
	"github.com/prosthetix/reports-platform/gateway/authflowrepo"
	"github.com/prosthetix/reports-platform/gateway/idp"
	"github.com/prosthetix/reports-platform/gateway/sessionrepo"
	"github.com/prosthetix/reports-platform/internal/config"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Printf("Error running gateway: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Gateway stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	// Discovery needs the identity provider up. The retry loop in main
	// covers provider startup ordering in compose environments.
	idpClient, err := idp.NewOIDCClient(context.Background(), c)
	if err != nil {
		return fmt.Errorf("idp.NewOIDCClient: %w", err)
	}

	handler := gateway.New(c, idpClient, sessionrepo.NewInMemoryRepo(), authflowrepo.NewInMemoryRepo())
	server := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(server)
	waitForStopSignal()
	returnError = shutdown(server)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Gateway listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
