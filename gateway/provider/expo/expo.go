package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/gateway"
)

const CName = "fieldops.provider.expo"

const ProviderName = "expo"

var log = logger.NewNamed(CName)

const (
	defaultUrl        = "https://exp.host/--/api/v2/push/send"
	defaultRatePerSec = 600
	batchLimit        = 100
)

var uuidToken = regexp.MustCompile(`(?i)^[a-z\d]{8}-[a-z\d]{4}-[a-z\d]{4}-[a-z\d]{4}-[a-z\d]{12}$`)

func New() Expo {
	return new(expo)
}

type Expo interface {
	gateway.Provider
	app.Component
}

type expo struct {
	conf    Config
	client  *http.Client
	limiter *rate.Limiter
}

func (e *expo) Init(a *app.App) (err error) {
	e.conf = a.MustComponent("config").(configSource).GetExpo()
	if e.conf.Url == "" {
		e.conf.Url = defaultUrl
	}
	if e.conf.RatePerSec <= 0 {
		e.conf.RatePerSec = defaultRatePerSec
	}
	e.client = &http.Client{Timeout: 30 * time.Second}
	e.limiter = rate.NewLimiter(rate.Limit(e.conf.RatePerSec), max(e.conf.RatePerSec, batchLimit))
	a.MustComponent(gateway.CName).(gateway.Gateway).RegisterProvider(ProviderName, e)
	return
}

func (e *expo) Name() (name string) {
	return CName
}

// IsValidToken accepts ExponentPushToken[...], ExpoPushToken[...] and bare uuid tokens.
func (e *expo) IsValidToken(token string) bool {
	if (strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")) && strings.HasSuffix(token, "]") {
		return true
	}
	return uuidToken.MatchString(token)
}

func (e *expo) MaxBatchSize() int {
	return batchLimit
}

type pushMessage struct {
	To        string            `json:"to"`
	Title     string            `json:"title,omitempty"`
	Body      string            `json:"body,omitempty"`
	Sound     string            `json:"sound,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Priority  string            `json:"priority,omitempty"`
	ChannelId string            `json:"channelId,omitempty"`
}

type pushTicket struct {
	Status  string `json:"status"`
	Id      string `json:"id"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type pushResponse struct {
	Data   []pushTicket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *expo) SendBatch(ctx context.Context, messages []domain.Message) (tickets []domain.Ticket, err error) {
	if err = e.limiter.WaitN(ctx, len(messages)); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	payload := make([]pushMessage, len(messages))
	for i, m := range messages {
		payload[i] = pushMessage{
			To:        m.To,
			Title:     m.Title,
			Body:      m.Body,
			Sound:     m.Sound,
			Data:      m.Data,
			Priority:  string(m.Priority),
			ChannelId: m.ChannelId,
		}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push messages: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.conf.Url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if e.conf.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+e.conf.AccessToken)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send push request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read push response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("expo push API returned status %d: %s", resp.StatusCode, truncate(body, 256))
	}
	var res pushResponse
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode push response: %w", err)
	}
	if len(res.Errors) > 0 && len(res.Data) == 0 {
		return nil, fmt.Errorf("expo push API error %s: %s", res.Errors[0].Code, res.Errors[0].Message)
	}

	tickets = make([]domain.Ticket, len(res.Data))
	for i, t := range res.Data {
		tickets[i] = domain.Ticket{
			Id:      t.Id,
			Message: t.Message,
			Error:   t.Details.Error,
		}
		if t.Status == string(domain.TicketStatusOk) {
			tickets[i].Status = domain.TicketStatusOk
		} else {
			tickets[i].Status = domain.TicketStatusError
		}
	}
	log.Debug("expo batch sent", zap.Int("messages", len(messages)), zap.Int("tickets", len(tickets)))
	return tickets, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
