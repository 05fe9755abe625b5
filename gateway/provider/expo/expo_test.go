package expo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/gateway"
)

var ctx = context.Background()

func TestExpo_IsValidToken(t *testing.T) {
	e := New()
	for token, valid := range map[string]bool{
		"ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx]": true,
		"ExpoPushToken[xxxxxxxxxxxxxxxxxxxxxx]":     true,
		"F5741A13-BCDA-434B-A316-5DC0E6FFA94F":      true,
		"ExponentPushToken[unterminated":            false,
		"local-token-123":                           false,
		"":                                          false,
	} {
		assert.Equal(t, valid, e.IsValidToken(token), token)
	}
}

func TestExpo_SendBatch(t *testing.T) {
	t.Run("tickets in order", func(t *testing.T) {
		var received []pushMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_, _ = w.Write([]byte(`{"data":[
				{"status":"ok","id":"t-1"},
				{"status":"error","message":"not registered","details":{"error":"DeviceNotRegistered"}}
			]}`))
		}))
		defer srv.Close()
		e := newTestExpo(srv, "secret")

		tickets, err := e.SendBatch(ctx, []domain.Message{
			domain.NewMessage("ExponentPushToken[a]", domain.Notification{Title: "hi", Body: "there", Data: map[string]string{"type": "note"}}),
			domain.NewMessage("ExponentPushToken[b]", domain.Notification{Title: "hi"}),
		})
		require.NoError(t, err)
		require.Len(t, received, 2)
		assert.Equal(t, "ExponentPushToken[a]", received[0].To)
		assert.Equal(t, "high", received[0].Priority)
		assert.Equal(t, "default", received[0].ChannelId)
		assert.Equal(t, "note", received[0].Data["type"])

		require.Len(t, tickets, 2)
		assert.Equal(t, domain.Ticket{Status: domain.TicketStatusOk, Id: "t-1"}, tickets[0])
		assert.Equal(t, domain.TicketStatusError, tickets[1].Status)
		assert.Equal(t, domain.TicketErrDeviceNotRegistered, tickets[1].Error)
	})
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		_, err := newTestExpo(srv, "").SendBatch(ctx, []domain.Message{{To: "ExponentPushToken[a]"}})
		require.Error(t, err)
	})
	t.Run("request error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errors":[{"code":"PUSH_TOO_MANY_EXPERIENCE_IDS","message":"mixed projects"}]}`))
		}))
		defer srv.Close()
		_, err := newTestExpo(srv, "").SendBatch(ctx, []domain.Message{{To: "ExponentPushToken[a]"}})
		require.ErrorContains(t, err, "PUSH_TOO_MANY_EXPERIENCE_IDS")
	})
}

func TestExpo_Gateway(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		var msgs []pushMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msgs))
		resp := pushResponse{}
		for range msgs {
			resp.Data = append(resp.Data, pushTicket{Status: "ok"})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	a := new(app.App)
	gw := gateway.New()
	a.Register(&testConfig{expo: Config{Url: srv.URL}}).Register(gw).Register(New())
	require.NoError(t, a.Start(ctx))
	defer func() {
		require.NoError(t, a.Close(ctx))
	}()

	res := gw.Send(ctx, []domain.Recipient{
		{Token: "ExponentPushToken[a]"},
		{Token: "not-an-expo-token"},
		{Token: "ExpoPushToken[b]"},
	}, domain.Notification{Title: "t", Body: "b"})
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, 2, res.Attempted)
	assert.Equal(t, 2, res.Delivered)
}

func newTestExpo(srv *httptest.Server, accessToken string) *expo {
	return &expo{
		conf:    Config{Url: srv.URL, AccessToken: accessToken},
		client:  srv.Client(),
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

type testConfig struct {
	expo Config
}

func (c *testConfig) Init(a *app.App) (err error) {
	return
}

func (c *testConfig) Name() (name string) {
	return "config"
}

func (c *testConfig) GetExpo() Config {
	return c.expo
}

func (c *testConfig) GetGateway() gateway.Config {
	return gateway.Config{Provider: ProviderName}
}
