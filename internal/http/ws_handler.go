package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"kanban-board.com/kanban-board/internal/auth"
	"kanban-board.com/kanban-board/internal/events"
)

// Connect upgrades to the push channel. Browsers cannot set headers on a
// websocket handshake, so the token may also come as ?token=.
func (h *Handler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		var err error
		if token, err = auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); err != nil {
			return err
		}
	}

	userID, err := h.verifier.Verify(token)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Debug("websocket upgrade failed")
		return nil
	}

	client := events.NewClient(uuid.NewString(), userID, conn, h.hub)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
	return nil
}
