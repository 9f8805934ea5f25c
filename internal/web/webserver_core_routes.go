// Package web provides the HTTP server for the capstone greeting page
package web

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/gokhanozkan/capstone/internal/config"
	"github.com/pkg/errors"
)

var trustedProxies = []string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

// WebServer represents the web server
type WebServer struct {
	Router *gin.Engine
	Config *config.WebConfig

	mux        sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	serving    bool
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig) *WebServer {
	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// unknown paths stay on gin's 404, known paths with a wrong method get 405
	router.HandleMethodNotAllowed = true

	// Client IPs come from X-Forwarded-For / X-Real-IP only when the peer is one
	// of these proxies (nginx, k8s ingress, etc.); anyone else gets their socket address
	router.RemoteIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("[WEB]: Warning: Failed to set trusted proxies: %v", err)
	}

	server := &WebServer{
		Router: router,
		Config: webconfig,
	}

	router.Use(server.ApacheLogFormat(), gin.Recovery())

	// Host allowlist only. No header options are set, so responses carry
	// nothing beyond gin's defaults; with no AllowedHosts this passes everything.
	router.Use(secure.New(secure.Config{
		AllowedHosts:   webconfig.AllowedHosts,
		BadHostHandler: server.rejectHost,
	}))

	server.setupRoutes()

	server.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	s.Router.GET("/", s.homePage)
	s.Router.HEAD("/", s.homePage)
}

// Listen binds the listening socket without serving requests yet
func (s *WebServer) Listen() error {
	addr := s.Config.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "unable to bind %s", addr)
	}
	s.mux.Lock()
	s.listener = ln
	s.mux.Unlock()
	return nil
}

// Serve accepts connections on the listener bound by Listen.
// It returns http.ErrServerClosed after Shutdown.
func (s *WebServer) Serve() error {
	s.mux.Lock()
	ln := s.listener
	s.serving = ln != nil
	s.mux.Unlock()
	if ln == nil {
		return fmt.Errorf("serve called before listen on %s", s.Config.Address())
	}
	log.Printf("[WEB]: Starting HTTP server on %s", ln.Addr())
	return s.httpServer.Serve(ln)
}

// Start binds and serves, returning the bind error if the socket can't be opened
func (s *WebServer) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown stops accepting connections and waits for active requests
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mux.Lock()
	if s.listener != nil && !s.serving {
		// bound but never served: http.Server doesn't know about this listener
		s.listener.Close()
	}
	s.mux.Unlock()
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the bound address, or the configured one before Listen
func (s *WebServer) Addr() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener == nil {
		return s.Config.Address()
	}
	return s.listener.Addr().String()
}

// rejectHost answers requests whose Host header is not in AllowedHosts
func (s *WebServer) rejectHost(c *gin.Context) {
	log.Printf("[WEB]: Rejected host %q from %s", c.Request.Host, c.ClientIP())
	c.AbortWithStatus(http.StatusForbidden)
}

// ApacheLogFormat logs requests in Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
