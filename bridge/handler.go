package bridge

import (
	"context"
	"errors"
	"log/slog"
	"vizshell/persist"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (s *Server) handleInvoke(c *fiber.Ctx) error {
	command := c.Params("command")
	if command == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrorPayload{
			Kind:    "malformed_args",
			Message: "command is required",
		}})
	}
	result, err := s.registry.Dispatch(c.Context(), command, c.Body())
	if err != nil {
		status, payload := errorPayload(err)
		return c.Status(status).JSON(fiber.Map{"error": payload})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (s *Server) handleListSaves(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"saves": s.records.List(c.Context()),
	})
}

func (s *Server) handleIPCUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		slog.Info("IPC channel connection request", "remote_addr", c.IP())
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (s *Server) handleIPCConn(conn *websocket.Conn) {
	client := s.hub.AddClient(conn)
	defer client.Close()

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Info("IPC channel closed", "remote_addr", conn.RemoteAddr())
				return
			}
			slog.Error("failed to read IPC message", "err", err)
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var frame InvokeFrame
		if err := sonic.Unmarshal(msg, &frame); err != nil {
			client.Send(mustMarshal(ResultFrame{Error: &ErrorPayload{
				Kind:    "malformed_args",
				Message: "invalid invoke frame: " + err.Error(),
			}}))
			continue
		}
		if frame.ID == "" {
			frame.ID = uuid.NewString()
		}

		reply := ResultFrame{ID: frame.ID}
		result, err := s.registry.Dispatch(context.Background(), frame.Command, frame.Args)
		if err != nil {
			_, payload := errorPayload(err)
			reply.Error = &payload
		} else {
			reply.Result = result
		}
		client.Send(mustMarshal(reply))
	}
}

func mustMarshal(v any) []byte {
	b, err := sonic.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal IPC frame", "err", err)
		return []byte(`{"error":{"kind":"io_failure","message":"failed to encode reply"}}`)
	}
	return b
}

// errorPayload maps dispatch and persistence faults onto wire errors
// and HTTP statuses.
func errorPayload(err error) (int, ErrorPayload) {
	var perr *persist.Error
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return fiber.StatusNotFound, ErrorPayload{Kind: "unknown_command", Message: err.Error()}
	case errors.Is(err, ErrMalformedArgs):
		return fiber.StatusBadRequest, ErrorPayload{Kind: "malformed_args", Message: err.Error()}
	case errors.As(err, &perr):
		status := fiber.StatusInternalServerError
		switch perr.Kind {
		case persist.KindInvalidPath:
			status = fiber.StatusBadRequest
		case persist.KindPermissionDenied:
			status = fiber.StatusForbidden
		}
		return status, ErrorPayload{Kind: string(perr.Kind), Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, ErrorPayload{Kind: "internal", Message: err.Error()}
	}
}
