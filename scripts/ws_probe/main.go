package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/peercall/peercall-server/internal/auth"
	"github.com/peercall/peercall-server/internal/proto"
)

// ws_probe dials a running server, authenticates with a locally minted
// dev token, joins a room and prints everything the server sends back.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_probe: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	secret := flag.String("secret", "", "JWT secret the server was started with")
	user := flag.String("user", "probe-user", "user identity to mint a token for")
	name := flag.String("name", "probe", "display name in the minted token")
	room := flag.String("room", "", "room to join (defaults to the user's own room)")
	timeout := flag.Duration("timeout", 10*time.Second, "total timeout for the run")
	flag.Parse()

	if *secret == "" {
		return fmt.Errorf("-secret is required")
	}
	if *room == "" {
		*room = *user
	}

	token, err := auth.GenerateToken(&auth.JWTConfig{Secret: []byte(*secret)}, *user, *name, time.Hour)
	if err != nil {
		return fmt.Errorf("mint token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(frameType string, data any) error {
		payload, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			return fmt.Errorf("marshal %s: %w", frameType, marshalErr)
		}
		if writeErr := wsjson.Write(ctx, conn, proto.Inbound{Type: frameType, Data: payload}); writeErr != nil {
			return fmt.Errorf("send %s: %w", frameType, writeErr)
		}
		return nil
	}

	if err := send(proto.InboundTypeConnect, proto.ConnectData{Token: token}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeJoinRoom, proto.JoinRoomData{RoomID: *room}); err != nil {
		return err
	}

	for {
		var outbound struct {
			Type  string          `json:"type"`
			Data  json.RawMessage `json:"data"`
			Error *proto.Error    `json:"error"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("received: type=%s", outbound.Type)
		if len(outbound.Data) > 0 {
			fmt.Printf(" data=%s", outbound.Data)
		}
		if outbound.Error != nil {
			fmt.Printf(" error=%s(%s)", outbound.Error.Code, outbound.Error.Msg)
		}
		fmt.Println()
	}
}
