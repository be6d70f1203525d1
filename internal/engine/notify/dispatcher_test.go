package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/model"
)

func testRequest() model.SignupRequest {
	return model.SignupRequest{
		VisitorName:  "Ana",
		VisitorPhone: "5519992071423",
		GroupName:    "Life Centro",
		LeaderName:   "Bruno",
		LeaderPhone:  "5519988887777",
		Mode:         "Presencial",
	}
}

func TestDispatchBothChannelsSucceed(t *testing.T) {
	var gotPayload webhookPayload
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(webhookResponse{Status: "success"})
	}))
	defer webhook.Close()

	var chatQuery map[string]string
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		chatQuery = map[string]string{
			"phone":  q.Get("phone"),
			"text":   q.Get("text"),
			"apikey": q.Get("apikey"),
		}
	}))
	defer chat.Close()

	d := NewDispatcher(config.NotifyConfig{
		WebhookURL: webhook.URL,
		ChatURL:    chat.URL,
		ChatAPIKey: "secret",
	}, zap.NewNop())

	ok, detail := d.Dispatch(context.Background(), testRequest())
	assert.True(t, ok)
	assert.Empty(t, detail)

	assert.Equal(t, "Ana", gotPayload.VisitanteNome)
	assert.Equal(t, "5519992071423", gotPayload.VisitanteZap)
	assert.Equal(t, "Life Centro", gotPayload.LifeNome)
	assert.Equal(t, "Bruno", gotPayload.LiderNome)
	assert.Equal(t, "5519988887777", gotPayload.LiderZap)
	assert.Equal(t, "Presencial", gotPayload.Modo)

	assert.Equal(t, "5519988887777", chatQuery["phone"])
	assert.Equal(t, "secret", chatQuery["apikey"])
	assert.Contains(t, chatQuery["text"], "Ana")
	assert.Contains(t, chatQuery["text"], "Life Centro")
}

func TestDispatchPartialFailureStillAttemptsBoth(t *testing.T) {
	var webhookHits atomic.Int64
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookHits.Add(1)
	}))
	defer webhook.Close()

	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer chat.Close()

	d := NewDispatcher(config.NotifyConfig{
		WebhookURL: webhook.URL,
		ChatURL:    chat.URL,
	}, zap.NewNop())

	ok, detail := d.Dispatch(context.Background(), testRequest())
	assert.False(t, ok)
	assert.Contains(t, detail, "chat")
	assert.NotContains(t, detail, "webhook")
	assert.Equal(t, int64(1), webhookHits.Load(), "succeeded channel must still be attempted exactly once")
}

func TestDispatchWebhookScriptError(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(webhookResponse{Status: "error", Message: "planilha cheia"})
	}))
	defer webhook.Close()

	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer chat.Close()

	d := NewDispatcher(config.NotifyConfig{WebhookURL: webhook.URL, ChatURL: chat.URL}, zap.NewNop())

	ok, detail := d.Dispatch(context.Background(), testRequest())
	assert.False(t, ok)
	assert.Contains(t, detail, "planilha cheia")
}

func TestDispatchWebhookNonJSONBodyIsSuccess(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer webhook.Close()

	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer chat.Close()

	d := NewDispatcher(config.NotifyConfig{WebhookURL: webhook.URL, ChatURL: chat.URL}, zap.NewNop())

	ok, detail := d.Dispatch(context.Background(), testRequest())
	assert.True(t, ok)
	assert.Empty(t, detail)
}

func TestDispatchUnconfiguredChannels(t *testing.T) {
	d := NewDispatcher(config.NotifyConfig{}, zap.NewNop())

	ok, detail := d.Dispatch(context.Background(), testRequest())
	assert.False(t, ok)
	assert.Contains(t, detail, "webhook: webhook URL not configured")
	assert.Contains(t, detail, "chat: chat endpoint not configured")
}

func TestLink(t *testing.T) {
	link := Link("5519988887777", "Ana Clara", "Life Centro")
	assert.Equal(t,
		"https://wa.me/5519988887777?text=Ol%C3%A1%2C+sou+Ana+Clara.+Tenho+interesse+no+LifeGroup+Life+Centro.",
		link)
}

func TestMessage(t *testing.T) {
	msg := Message(testRequest())
	assert.Equal(t, "Olá, Bruno! Ana quer participar do LifeGroup Life Centro (Presencial). WhatsApp: 5519992071423", msg)
}
