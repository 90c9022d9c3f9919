package http

import (
	"encoding/json"
	"testing"

	"github.com/peercall/peercall-server/internal/core"
	"github.com/peercall/peercall-server/internal/proto"
)

func TestParseInboundValidFrames(t *testing.T) {
	tests := []struct {
		name    string
		inbound proto.Inbound
		check   func(t *testing.T, action *inboundAction)
	}{
		{
			name:    "join-room",
			inbound: proto.Inbound{Type: "join-room", Data: json.RawMessage(`{"room_id":"u1"}`)},
			check: func(t *testing.T, action *inboundAction) {
				if action.kind != proto.InboundTypeJoinRoom || action.room != "u1" {
					t.Fatalf("unexpected action: %+v", action)
				}
			},
		},
		{
			name:    "leave-room with room",
			inbound: proto.Inbound{Type: "leave-room", Data: json.RawMessage(`{"room_id":"u1"}`)},
			check: func(t *testing.T, action *inboundAction) {
				if action.kind != proto.InboundTypeLeaveRoom || action.room != "u1" {
					t.Fatalf("unexpected action: %+v", action)
				}
			},
		},
		{
			name:    "leave-room defaults to current room",
			inbound: proto.Inbound{Type: "leave-room"},
			check: func(t *testing.T, action *inboundAction) {
				if action.room != "" {
					t.Fatalf("expected empty room, got %q", action.room)
				}
			},
		},
		{
			name:    "data keeps raw payload",
			inbound: proto.Inbound{Type: "data", Data: json.RawMessage(`{"sender_id":"a","target_id":"b","type":"offer","sdp":"x"}`)},
			check: func(t *testing.T, action *inboundAction) {
				if action.header.SenderID != "a" || action.header.TargetID != "b" || action.header.Type != "offer" {
					t.Fatalf("unexpected header: %+v", action.header)
				}
				if string(action.payload) != `{"sender_id":"a","target_id":"b","type":"offer","sdp":"x"}` {
					t.Fatalf("payload not preserved: %s", action.payload)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, protoErr := parseInbound(tt.inbound)
			if protoErr != nil {
				t.Fatalf("unexpected error: %+v", protoErr)
			}
			tt.check(t, action)
		})
	}
}

func TestParseInboundRejectsBadFrames(t *testing.T) {
	tests := []struct {
		name     string
		inbound  proto.Inbound
		wantCode string
	}{
		{
			name:     "join without room",
			inbound:  proto.Inbound{Type: "join-room", Data: json.RawMessage(`{}`)},
			wantCode: core.ErrCodeBadRequest,
		},
		{
			name:     "data without target",
			inbound:  proto.Inbound{Type: "data", Data: json.RawMessage(`{"sender_id":"a","type":"offer"}`)},
			wantCode: core.ErrCodeBadRequest,
		},
		{
			name:     "data without sender",
			inbound:  proto.Inbound{Type: "data", Data: json.RawMessage(`{"target_id":"b","type":"offer"}`)},
			wantCode: core.ErrCodeBadRequest,
		},
		{
			name:     "second connect",
			inbound:  proto.Inbound{Type: "connect", Data: json.RawMessage(`{"token":"t"}`)},
			wantCode: core.ErrCodeInvalidMessage,
		},
		{
			name:     "unknown type",
			inbound:  proto.Inbound{Type: "dance"},
			wantCode: core.ErrCodeInvalidMessage,
		},
		{
			name:     "malformed json",
			inbound:  proto.Inbound{Type: "join-room", Data: json.RawMessage(`{`)},
			wantCode: core.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, protoErr := parseInbound(tt.inbound)
			if action != nil {
				t.Fatalf("expected rejection, got action %+v", action)
			}
			if protoErr == nil || protoErr.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %+v", tt.wantCode, protoErr)
			}
		})
	}
}

func TestOutboundFromEventShapes(t *testing.T) {
	joined := outboundFromEvent(&core.Event{Kind: core.EventUserConnect, User: "u2", Name: "bob", Room: "u1"})
	if joined.Type != proto.OutboundTypeUserConnect {
		t.Fatalf("unexpected type: %s", joined.Type)
	}
	if data := joined.Data.(proto.EventUserConnect); data.ID != "u2" || data.Name != "bob" {
		t.Fatalf("unexpected data: %+v", data)
	}

	left := outboundFromEvent(&core.Event{Kind: core.EventUserDisconnect, User: "u2", ConnID: "c2"})
	if data := left.Data.(proto.EventUserDisconnect); data.ID != "u2" || data.SID != "c2" {
		t.Fatalf("unexpected data: %+v", data)
	}

	notFriend := outboundFromEvent(&core.Event{Kind: core.EventNotFriend})
	if notFriend.Type != proto.OutboundTypeNotFriend || notFriend.Data != nil {
		t.Fatalf("unexpected not-friend frame: %+v", notFriend)
	}

	raw := json.RawMessage(`{"type":"answer"}`)
	data := outboundFromEvent(&core.Event{Kind: core.EventData, Payload: raw})
	if string(data.Data.(json.RawMessage)) != `{"type":"answer"}` {
		t.Fatalf("payload altered: %+v", data.Data)
	}
}
