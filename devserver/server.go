package devserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

// DevHttpServer hosts the reference backend the client talks to during
// development: the full REST surface plus the websocket status feed.
type DevHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
}

func NewDevHttpServer(router *Router, muxRouter *mux.Router, addr string) *DevHttpServer {
	return &DevHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
	}
}

// Handler registers the routes and returns the root handler. Used by tests
// to mount the backend on an httptest server.
func (s *DevHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return s.muxRouter
}

// Start serves until an interrupt or termination signal, then shuts down
// gracefully.
func (s *DevHttpServer) Start() {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.muxRouter,
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine so it doesn't block
	go func() {
		fmt.Println("Starting dev backend on " + s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for a signal to shut down
	<-stop
	fmt.Println("\nShutting down the server...")

	// Create a deadline for the shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	fmt.Println("Server exiting")
}
