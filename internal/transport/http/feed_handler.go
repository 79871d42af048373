package http

import (
	"log"
	"net/http"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
	"github.com/gorilla/websocket"
)

// FeedHandler streams newly submitted leads to the dashboard over a
// websocket so the review table updates without polling.
type FeedHandler struct {
	feed     *app.Feed
	upgrader websocket.Upgrader
}

func NewFeedHandler(feed *app.Feed) *FeedHandler {
	return &FeedHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type feedMessage struct {
	Type string      `json:"type"`
	Lead domain.Lead `json:"lead"`
}

// ServeWS upgrades the request and forwards feed publishes until the client
// disconnects. The gate has already authenticated the request.
func (h *FeedHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.feed.Subscribe()
	defer cancel()

	// Read pump exists only to notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case lead, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(feedMessage{Type: "lead", Lead: lead}); err != nil {
				log.Printf("feed write error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
