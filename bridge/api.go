package bridge

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"os"
	"time"
	"vizshell/config"
	"vizshell/service"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Server is the local IPC bridge the embedded UI process talks to.
type Server struct {
	app      *fiber.App
	registry *Registry
	records  service.SaveRecordStorage
	hub      *ClientHub
}

func NewServer() *Server {
	s := &Server{
		registry: NewRegistry(),
		records:  service.NewSaveRecordMemoryStorage(),
		hub:      NewClientHub(),
	}
	if err := RegisterCommands(s.registry, s.records); err != nil {
		slog.Error("failed to register commands", "err", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		BodyLimit:   config.MaxPayloadSize,
	})
	loggerCfg := logger.ConfigDefault
	loggerCfg.Format = "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n"
	app.Use(logger.New(loggerCfg))

	rg := app.Group("/api")
	rg.Use(limiter.New(limiter.Config{
		Max: max(config.C.APIRPM, 2),
	}))
	// The token keeps other local processes from invoking backend
	// commands through the loopback port.
	if config.C.IPCToken != "" {
		expected := sha256.Sum256([]byte(config.C.IPCToken))
		rg.Use(keyauth.New(keyauth.Config{
			KeyLookup: "header:X-IPC-Token",
			Validator: func(c *fiber.Ctx, token string) (bool, error) {
				hashed := sha256.Sum256([]byte(token))
				if subtle.ConstantTimeCompare(hashed[:], expected[:]) == 1 {
					return true, nil
				}
				return false, keyauth.ErrMissingOrMalformedAPIKey
			},
		}))
	}
	rg.Post("/invoke/:command", s.handleInvoke)
	rg.Get("/saves", s.handleListSaves)
	rg.Get("/ipc", s.handleIPCUpgrade)
	rg.Get("/ipc", websocket.New(s.handleIPCConn))

	s.app = app
	return s
}

func Serve(ctx context.Context) {
	s := NewServer()
	addr := fmt.Sprintf("%s:%d", config.C.BindHost, config.C.BindPort)
	go func() {
		if err := s.app.Listen(addr); err != nil {
			slog.Error("failed to start IPC bridge", "err", err)
			os.Exit(1)
		}
	}()
	<-ctx.Done()
	slog.Info("IPC bridge is shutting down")
	if err := s.app.ShutdownWithTimeout(time.Second * 10); err != nil {
		slog.Error("failed to gracefully shutdown IPC bridge", "err", err)
	} else {
		slog.Info("IPC bridge shutdown successfully")
	}
}
