package http

import (
	"encoding/json"

	"github.com/peercall/peercall-server/internal/core"
	"github.com/peercall/peercall-server/internal/proto"
)

// inboundAction is a validated inbound frame, ready for the hub.
type inboundAction struct {
	kind    string
	room    string
	header  proto.DataHeader
	payload json.RawMessage
}

func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func parseInbound(inbound proto.Inbound) (*inboundAction, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := unmarshalData(inbound.Data, &join); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed join-room data"}
		}
		if join.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room_id is required"}
		}
		return &inboundAction{kind: proto.InboundTypeJoinRoom, room: join.RoomID}, nil

	case proto.InboundTypeLeaveRoom:
		var leave proto.LeaveRoomData
		if err := unmarshalData(inbound.Data, &leave); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed leave-room data"}
		}
		// Empty room id means the current room.
		return &inboundAction{kind: proto.InboundTypeLeaveRoom, room: leave.RoomID}, nil

	case proto.InboundTypeData:
		var header proto.DataHeader
		if err := unmarshalData(inbound.Data, &header); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed data frame"}
		}
		if header.TargetID == "" || header.SenderID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "sender_id and target_id are required"}
		}
		return &inboundAction{
			kind:    proto.InboundTypeData,
			header:  header,
			payload: inbound.Data,
		}, nil

	case proto.InboundTypeConnect:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "already authenticated"}

	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventUserConnect:
		return proto.Outbound{
			Type: proto.OutboundTypeUserConnect,
			Data: proto.EventUserConnect{
				Name: event.Name,
				ID:   event.User,
			},
		}
	case core.EventUserDisconnect:
		return proto.Outbound{
			Type: proto.OutboundTypeUserDisconnect,
			Data: proto.EventUserDisconnect{
				SID: event.ConnID,
				ID:  event.User,
			},
		}
	case core.EventUserList:
		return proto.Outbound{
			Type: proto.OutboundTypeUserList,
			Data: proto.EventUserList{List: event.Roster},
		}
	case core.EventEnterCall:
		return proto.Outbound{
			Type: proto.OutboundTypeEnterCall,
			Data: proto.EventEnterCall{
				SID:  event.ConnID,
				Name: event.Name,
				ID:   event.User,
			},
		}
	case core.EventNotFriend:
		return proto.Outbound{Type: proto.OutboundTypeNotFriend}
	case core.EventData:
		// Verbatim relay: the payload bytes pass through untouched.
		return proto.Outbound{
			Type: proto.OutboundTypeData,
			Data: event.Payload,
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unmapped event"}}
	}
}
