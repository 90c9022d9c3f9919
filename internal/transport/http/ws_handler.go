package http

import (
	"context"
	"errors"
	"io"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/peercall/peercall-server/internal/auth"
	"github.com/peercall/peercall-server/internal/config"
	"github.com/peercall/peercall-server/internal/core"
	"github.com/peercall/peercall-server/internal/proto"
)

// WSHandler upgrades HTTP connections, authenticates them, and bridges
// them to the hub as core.Client instances.
type WSHandler struct {
	hub      *core.Hub
	resolver *auth.Resolver
	cfg      config.Config
	log      *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, resolver *auth.Resolver, cfg config.Config, logger *zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, resolver: resolver, cfg: cfg, log: logger}
}

// Handle serves one WebSocket connection for its whole lifetime.
func (h *WSHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client, err := h.authenticate(ctx, conn)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws connect rejected")
		conn.Close(websocket.StatusPolicyViolation, "invalid credential")
		return
	}

	h.hub.Connect(client)
	defer h.hub.Disconnect(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("conn_id", client.ConnID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

// authenticate reads the mandatory first frame and resolves its credential
// to an identity. The whole handshake is bounded by the auth timeout so a
// silent client cannot hold an unauthenticated socket open.
func (h *WSHandler) authenticate(ctx context.Context, conn *websocket.Conn) (*core.Client, error) {
	authCtx, cancel := context.WithTimeout(ctx, h.cfg.AuthTimeout)
	defer cancel()

	var inbound proto.Inbound
	if err := wsjson.Read(authCtx, conn, &inbound); err != nil {
		return nil, err
	}
	if inbound.Type != proto.InboundTypeConnect {
		return nil, errors.New("first frame must be connect")
	}

	var connect proto.ConnectData
	if err := unmarshalData(inbound.Data, &connect); err != nil {
		return nil, err
	}
	if connect.Token == "" {
		return nil, auth.ErrInvalidCredential
	}

	identity, err := h.resolver.Resolve(authCtx, connect.Token)
	if err != nil {
		return nil, err
	}

	client := core.NewClient(uuid.NewString(), identity.UserID, identity.Name, h.cfg.EventBuffer)
	client.Avatar = identity.Avatar
	return client, nil
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		action, protoErr := parseInbound(inbound)
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
			continue
		}

		switch action.kind {
		case proto.InboundTypeJoinRoom:
			h.hub.JoinRoom(ctx, client, action.room)
		case proto.InboundTypeLeaveRoom:
			h.hub.LeaveRoom(client, action.room)
		case proto.InboundTypeData:
			h.hub.RelayData(client, action.header.SenderID, action.header.TargetID, action.header.Type, action.payload)
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ConnID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
