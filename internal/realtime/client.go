package realtime

import (
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/you/classhub/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// inbound is a frame sent by the browser
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// roomPayload is the body of joinedClass and leftClass
type roomPayload struct {
	ClassID string `json:"classId"`
}

// Client is one websocket connection registered with the hub
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan *domain.Event
	done   chan struct{}
	once   sync.Once
	userID uint
}

func newClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan *domain.Event, sendBuffer),
		done:   make(chan struct{}),
		userID: userID,
	}
}

// Deliver implements Subscriber. Events for a full or closed client are dropped.
func (c *Client) Deliver(ev *domain.Event) bool {
	if c.closed() {
		return false
	}

	select {
	case c.send <- ev:
		return true
	default:
		log.Printf("WS_EVENT_DROPPED: user=%d event=%s", c.userID, ev.Name)
		return false
	}
}

// close leaves every room and stops the write pump, which closes the socket
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.hub.LeaveAll(c)
	})
}

// join adds the client to room unless it is closing. A close racing with the
// join is undone here, since LeaveAll may already have run.
func (c *Client) join(room string) bool {
	if c.closed() {
		return false
	}
	c.hub.Join(c, room)
	if c.closed() {
		c.hub.Leave(c, room)
		return false
	}
	return true
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// readPump handles joinClass and leaveClass frames until the connection drops
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inbound
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WS_READ_ERROR: user=%d err=%v", c.userID, err)
			}
			return
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg inbound) {
	var classID string
	if err := json.Unmarshal(msg.Data, &classID); err != nil || strings.TrimSpace(classID) == "" {
		c.Deliver(domain.NewEvent(domain.EventError, map[string]string{"message": "data must be a class id string"}))
		return
	}
	classID = strings.TrimSpace(classID)

	// Private rooms are joined by the server from the token, never by request
	if domain.IsUserRoom(classID) {
		c.Deliver(domain.NewEvent(domain.EventError, map[string]string{"message": "invalid class id"}))
		return
	}

	switch msg.Event {
	case domain.EventJoinClass:
		if !c.join(classID) {
			return
		}
		c.Deliver(domain.NewEvent(domain.EventJoinedClass, roomPayload{ClassID: classID}))
	case domain.EventLeaveClass:
		c.hub.Leave(c, classID)
		c.Deliver(domain.NewEvent(domain.EventLeftClass, roomPayload{ClassID: classID}))
	default:
		c.Deliver(domain.NewEvent(domain.EventError, map[string]string{"message": "unknown event " + msg.Event}))
	}
}

// writePump writes queued events and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
		c.conn.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
