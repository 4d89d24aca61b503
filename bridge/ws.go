package bridge

import (
	"log/slog"
	"sync"
	"time"
	"vizshell/config"
	"vizshell/service"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/websocket"
)

// IPCClient is one connected UI window on the event channel.
type IPCClient struct {
	conn *websocket.Conn
	send chan []byte
	hub  *ClientHub
	once sync.Once
}

func NewIPCClient(conn *websocket.Conn, hub *ClientHub) *IPCClient {
	c := &IPCClient{
		conn: conn,
		send: make(chan []byte, config.WSSendBuffer),
		hub:  hub,
	}
	go c.writePump()
	return c
}

func (c *IPCClient) writePump() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(config.WSWriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			slog.Error("ipc client write error", "err", err)
			break
		}
	}
	c.conn.Close()
}

func (c *IPCClient) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
		slog.Warn("ipc client send buffer full, dropping connection", "client", c.conn.RemoteAddr())
		c.Close()
	}
}

func (c *IPCClient) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
		c.hub.RemoveClient(c)
	})
}

// ClientHub tracks connected UI clients and fans save events out to
// them as they happen.
type ClientHub struct {
	mu      sync.Mutex
	clients map[*IPCClient]struct{}
}

func NewClientHub() *ClientHub {
	h := &ClientHub{clients: make(map[*IPCClient]struct{})}
	service.SubscribeEvent(service.EventSaveCompleted, h.pushEvent)
	service.SubscribeEvent(service.EventSaveFailed, h.pushEvent)
	return h
}

func (h *ClientHub) AddClient(conn *websocket.Conn) *IPCClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	cl := NewIPCClient(conn, h)
	h.clients[cl] = struct{}{}
	return cl
}

func (h *ClientHub) RemoveClient(c *IPCClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *ClientHub) Broadcast(msg []byte) {
	h.mu.Lock()
	clients := make([]*IPCClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		c.Send(msg)
	}
}

func (h *ClientHub) pushEvent(ev service.Event) {
	b, err := sonic.Marshal(EventFrame{Event: ev.Type, Payload: ev.Payload})
	if err != nil {
		slog.Error("failed to marshal event frame", "event", ev.Type, "err", err)
		return
	}
	h.Broadcast(b)
}
