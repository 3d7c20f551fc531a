package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func rsvpChannel(coupleId uint) string {
	return fmt.Sprintf("rsvp:%d", coupleId)
}

// FeedAuth runs before the websocket upgrade and pins the authenticated
// couple id into Locals, where the upgraded connection can still read it.
func (h *Handler) FeedAuth(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}
	c.Locals("feedCoupleId", couple.ID)
	return c.Next()
}

// RSVPFeed streams RSVP events for one couple's dashboard. Events are
// published to redis by SubmitRSVP, so the feed works across instances. Each
// connection holds its own subscription and receives each event exactly once;
// the read loop exists to notice the client going away and close the
// subscription, which unblocks the delivery loop.
func (h *Handler) RSVPFeed(c *websocket.Conn) {
	coupleId, _ := c.Locals("feedCoupleId").(uint)
	if coupleId == 0 || h.Redis == nil {
		c.Close()
		return
	}
	defer c.Close()

	pubsub := h.Redis.Subscribe(context.Background(), rsvpChannel(coupleId))
	defer pubsub.Close()

	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				pubsub.Close()
				return
			}
		}
	}()

	for msg := range pubsub.Channel() {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			log.Debug().Err(err).Uint("coupleId", coupleId).Msg("rsvp feed client gone")
			return
		}
	}
}
