package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const defaultWriteWait = 10 * time.Second

// client serializa as escritas numa conexão; gorilla não aceita writers concorrentes.
// Toda escrita tem prazo, um cliente parado não pode segurar o broadcast.
type client struct {
	conn *websocket.Conn
	wait time.Duration
	mu   sync.Mutex
}

func (c *client) write(msgType int, b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.wait))
	return c.conn.WriteMessage(msgType, b)
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.wait))
	return c.conn.WriteJSON(v)
}

// Hub mantém as conexões do dashboard e repassa cada snapshot de stats a todas elas.
// O último snapshot fica guardado e é enviado assim que um cliente conecta.
type Hub struct {
	upgrader  websocket.Upgrader
	log       *zap.Logger
	writeWait time.Duration

	mu      sync.RWMutex
	clients map[*client]struct{}
	last    []byte
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool, log *zap.Logger) *Hub {
	return &Hub{
		upgrader:  websocket.Upgrader{CheckOrigin: allowOrigin},
		log:       log,
		writeWait: defaultWriteWait,
		clients:   make(map[*client]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket e responde a pings
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{conn: conn, wait: h.writeWait}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	last := h.last
	h.mu.Unlock()

	if last != nil {
		_ = c.write(websocket.TextMessage, last)
	}

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "ping" {
			_ = c.writeJSON(map[string]string{"type": "pong"})
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Broadcast envia o payload cru para todos os clientes conectados.
// Quem falha na escrita (inclusive por prazo) é desconectado; o loop de leitura remove o cliente.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	h.last = append([]byte(nil), payload...)
	conns := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.write(websocket.TextMessage, payload); err != nil {
			h.log.Debug("ws write failed, dropping client", zap.Error(err))
			_ = c.conn.Close()
		}
	}
}

// Clients retorna quantas conexões estão ativas
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
