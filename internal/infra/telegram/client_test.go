package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:TEST-token"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*TelebotClient, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)

	client, err := NewTelebotClient(Config{
		APIURL:    server.URL,
		Token:     testToken,
		ChannelID: "@verse_channel",
		Timeout:   5 * time.Second,
	}, log)
	require.NoError(t, err)

	return client, &logs
}

func TestNewTelebotClient_Offline(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := NewTelebotClient(Config{APIURL: server.URL, Token: testToken, ChannelID: "@c"}, log)
	require.NoError(t, err)
	assert.Zero(t, calls, "construction must not touch the network")

	_, err = NewTelebotClient(Config{APIURL: server.URL, ChannelID: "@c"}, log)
	require.Error(t, err)

	_, err = NewTelebotClient(Config{APIURL: server.URL, Token: testToken}, log)
	require.Error(t, err)
}

func TestTelebotClient_CheckConnectivity(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{name: "ok", status: http.StatusOK, body: `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Verse","username":"verse_bot"}}`, want: true},
		{name: "explicit failure", status: http.StatusOK, body: `{"ok":false,"error_code":401,"description":"Unauthorized"}`, want: false},
		{name: "unauthorized status", status: http.StatusUnauthorized, body: `{"ok":false,"error_code":401,"description":"Unauthorized"}`, want: false},
		{name: "not json", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, want: false},
		{name: "missing ok", status: http.StatusOK, body: `{"result":{"username":"verse_bot"}}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/bot"+testToken+"/getMe", r.URL.Path)
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			assert.Equal(t, tt.want, client.CheckConnectivity(context.Background()))
		})
	}
}

func TestTelebotClient_SendMessage(t *testing.T) {
	var got map[string]any

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+testToken+"/sendMessage", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		fmt.Fprint(w, `{"ok":true,"result":{"message_id":77,"date":1700000000,"chat":{"id":-100123,"type":"channel","username":"verse_channel"},"text":"hi"}}`)
	})

	ok := client.SendMessage(context.Background(), "📖 *Al-Faatiha* (1:1)")
	require.True(t, ok)

	assert.Equal(t, "@verse_channel", got["chat_id"])
	assert.Equal(t, "📖 *Al-Faatiha* (1:1)", got["text"])
	assert.Equal(t, "Markdown", got["parse_mode"])
	assert.Equal(t, "true", fmt.Sprint(got["disable_web_page_preview"]))
}

func TestTelebotClient_SendMessageFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "api error", status: http.StatusBadRequest, body: `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`},
		{name: "forbidden", status: http.StatusForbidden, body: `{"ok":false,"error_code":403,"description":"Forbidden: bot is not a member of the channel chat"}`},
		{name: "not json", status: http.StatusInternalServerError, body: `oops`},
		{name: "ok without message", status: http.StatusOK, body: `{"ok":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			assert.False(t, client.SendMessage(context.Background(), "text"))
			assert.NotContains(t, logs.String(), testToken)
		})
	}
}

func TestTelebotClient_NetworkErrorIsRedacted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	apiURL := server.URL
	server.Close()

	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)

	client, err := NewTelebotClient(Config{APIURL: apiURL, Token: testToken, ChannelID: "@c", Timeout: time.Second}, log)
	require.NoError(t, err)

	assert.False(t, client.CheckConnectivity(context.Background()))
	assert.False(t, client.SendMessage(context.Background(), "text"))
	assert.NotContains(t, logs.String(), testToken)
	assert.True(t, strings.Contains(logs.String(), "<token>"))
}

func TestTelebotClient_CancelledContext(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, client.CheckConnectivity(ctx))
	assert.False(t, client.SendMessage(ctx, "text"))
	assert.Zero(t, calls)
}
