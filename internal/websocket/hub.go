package websocket

import (
	"github.com/rs/zerolog/log"
)

type reply struct {
	client  *Client
	message []byte
}

type envelope struct {
	userID  string
	message []byte
}

// Hub maintains the set of active clients, grouped by user, and delivers
// published messages to them. All hub state is owned by the Run goroutine.
type Hub struct {
	// Registered clients per user id.
	clients map[string]map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	publish chan envelope
	replies chan reply
	stop    chan struct{}
	done    chan struct{}
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		publish:    make(chan envelope, 256),
		replies:    make(chan reply, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run starts the Hub's message processing loop. It returns after Stop.
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.Register:
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			log.Debug().Str("user_id", client.UserID).Int("user_clients", len(h.clients[client.UserID])).Msg("Client connected")
		case client := <-h.Unregister:
			if h.remove(client) {
				log.Debug().Str("user_id", client.UserID).Msg("Client disconnected")
			}
		case env := <-h.publish:
			for client := range h.clients[env.userID] {
				select {
				case client.Send <- env.message:
				default:
					log.Warn().Str("user_id", client.UserID).Msg("Dropping slow websocket client")
					h.remove(client)
				}
			}
		case rep := <-h.replies:
			if h.clients[rep.client.UserID][rep.client] {
				select {
				case rep.client.Send <- rep.message:
				default:
				}
			}
		case <-h.stop:
			for _, set := range h.clients {
				for client := range set {
					close(client.Send)
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			return
		}
	}
}

// Stop terminates Run and closes every client's send channel.
func (h *Hub) Stop() {
	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
	<-h.done
}

// Publish queues an {action, payload} message for every live client of
// userID. It never blocks the caller; messages are dropped when the hub is
// saturated or stopped.
func (h *Hub) Publish(userID, action string, payload interface{}) {
	message, err := NewMessage(action, payload)
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode websocket message")
		return
	}
	select {
	case h.publish <- envelope{userID: userID, message: message}:
	case <-h.stop:
	default:
		log.Warn().Str("user_id", userID).Str("action", action).Msg("Websocket hub saturated, dropping message")
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Reply sends message to a single client if it is still registered.
func (h *Hub) Reply(client *Client, message []byte) {
	select {
	case h.replies <- reply{client: client, message: message}:
	case <-h.done:
	}
}

// unregister is safe to call after the hub has stopped.
func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) bool {
	set, ok := h.clients[client.UserID]
	if !ok || !set[client] {
		return false
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
	return true
}
