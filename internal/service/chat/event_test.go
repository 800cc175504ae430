package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"apna_room_server/pkg/errorx"
)

func TestDecodeClientEventValid(t *testing.T) {
	event, err := DecodeClientEvent([]byte(`{"type":"sendMessage","payload":{"conversationId":"C-1","content":"hi"}}`))
	require.NoError(t, err)
	require.Equal(t, EventSendMessage, event.Type)

	event, err = DecodeClientEvent([]byte(`{"type":"markAsRead","payload":{"conversationId":"C-1"}}`))
	require.NoError(t, err)
	require.Equal(t, EventMarkAsRead, event.Type)

	_, err = DecodeClientEvent([]byte(`{"type":"updateStatus","payload":{"status":"away"}}`))
	require.NoError(t, err)

	// Status is an opaque token, not an enum.
	_, err = DecodeClientEvent([]byte(`{"type":"updateStatus","payload":{"status":"in a viewing"}}`))
	require.NoError(t, err)
}

func TestDecodeClientEventRejections(t *testing.T) {
	cases := []struct {
		name  string
		frame string
	}{
		{"not json", `{{{`},
		{"unknown type", `{"type":"shutdown","payload":{}}`},
		{"empty type", `{"payload":{}}`},
		{"join without conversation", `{"type":"joinConversation","payload":{}}`},
		{"typing without conversation", `{"type":"typing","payload":{"isTyping":true}}`},
		{"send without content", `{"type":"sendMessage","payload":{"conversationId":"C-1"}}`},
		{"send without conversation", `{"type":"sendMessage","payload":{"content":"hi"}}`},
		{"markAsRead without conversation", `{"type":"markAsRead","payload":{"messageIds":["1"]}}`},
		{"empty status", `{"type":"updateStatus","payload":{}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeClientEvent([]byte(tc.frame))
			require.Error(t, err)
			require.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
		})
	}
}

func TestServerEventEncode(t *testing.T) {
	data := ServerEvent{Type: EventUserTyping, Payload: UserTypingPayload{
		ConversationId: "C-1", UserId: "U-a", IsTyping: true,
	}}.Encode()
	require.JSONEq(t,
		`{"type":"userTyping","payload":{"conversationId":"C-1","userId":"U-a","isTyping":true}}`,
		string(data))
}
