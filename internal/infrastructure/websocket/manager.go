package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"talentflow/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxFrame   = 4096
)

// Client is one websocket connection of an authenticated user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	done chan struct{}
	once sync.Once
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		done:   make(chan struct{}),
	}
}

// Enqueue hands a frame to the write pump. It blocks while the buffer is full
// and gives up once the client is closed.
func (c *Client) Enqueue(frame []byte) bool {
	select {
	case c.Send <- frame:
		return true
	case <-c.done:
		return false
	}
}

// EnqueueJSON wraps data in a WSMessage of the given type.
func (c *Client) EnqueueJSON(msgType string, data interface{}) bool {
	frame, err := json.Marshal(NewMessage(msgType, data))
	if err != nil {
		logger.Error("websocket: failed to encode %s frame for %s: %v", msgType, c.UserID, err)
		return false
	}
	return c.Enqueue(frame)
}

func (c *Client) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Manager tracks live connections so they can be counted and shut down.
type Manager struct {
	clients map[*Client]struct{}
	mutex   sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[*Client]struct{}),
	}
}

func (m *Manager) Register(client *Client) {
	m.mutex.Lock()
	m.clients[client] = struct{}{}
	m.mutex.Unlock()
	logger.Info("Client registered: %s", client.UserID)
}

func (m *Manager) Unregister(client *Client) {
	m.mutex.Lock()
	_, ok := m.clients[client]
	delete(m.clients, client)
	m.mutex.Unlock()
	if ok {
		client.Close()
		logger.Info("Client unregistered: %s", client.UserID)
	}
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// CloseAll disconnects every client.
func (m *Manager) CloseAll() {
	m.mutex.Lock()
	clients := m.clients
	m.clients = make(map[*Client]struct{})
	m.mutex.Unlock()

	for client := range clients {
		client.Close()
	}
}

// ReadPump reads frames until the connection fails, passing each decoded
// message to onMessage. It unregisters the client on exit.
func (c *Client) ReadPump(m *Manager, onMessage func(WSMessage)) {
	defer func() {
		m.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrame)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error for %s: %v", c.UserID, err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Debug("websocket: ignoring malformed frame from %s: %v", c.UserID, err)
			continue
		}
		onMessage(msg)
	}
}

// WritePump drains Send to the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Warn("websocket write error for %s: %v", c.UserID, err)
				c.Close()
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}

		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
