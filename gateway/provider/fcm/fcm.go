package fcm

import (
	"context"
	"fmt"
	"regexp"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/fieldops/fieldops-push-server/domain"
	"github.com/fieldops/fieldops-push-server/gateway"
)

const CName = "fieldops.provider.fcm"

const ProviderName = "fcm"

var log = logger.NewNamed(CName)

// FCM accepts up to 500 messages per SendEach call.
const batchSize = 500

const (
	minTokenLen = 32
	maxTokenLen = 4096
)

var registrationToken = regexp.MustCompile(`^[\w:-]+$`)

func New() FCM {
	return new(fcm)
}

type FCM interface {
	app.Component
}

type fcm struct {
}

func (f *fcm) Init(a *app.App) (err error) {
	conf := a.MustComponent("config").(configSource).GetFCM()
	if conf.CredentialsFile == "" {
		log.Info("fcm credentials are not configured, provider disabled")
		return
	}
	sender, err := newSender(conf.CredentialsFile)
	if err != nil {
		return err
	}
	a.MustComponent(gateway.CName).(gateway.Gateway).RegisterProvider(ProviderName, sender)
	return
}

func (f *fcm) Name() (name string) {
	return CName
}

func newSender(credentialsFile string) (gateway.Provider, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	fcmApp, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}
	client, err := fcmApp.Messaging(context.Background())
	if err != nil {
		return nil, err
	}
	return &fcmSender{client: client}, nil
}

type fcmSender struct {
	client *messaging.Client
}

func (f *fcmSender) IsValidToken(token string) bool {
	return len(token) >= minTokenLen && len(token) <= maxTokenLen && registrationToken.MatchString(token)
}

func (f *fcmSender) MaxBatchSize() int {
	return batchSize
}

func (f *fcmSender) SendBatch(ctx context.Context, messages []domain.Message) (tickets []domain.Ticket, err error) {
	fcmMessages := make([]*messaging.Message, len(messages))
	for i, m := range messages {
		fcmMessages[i] = buildFcmMessage(m)
	}
	response, err := f.client.SendEach(ctx, fcmMessages)
	if err != nil {
		return nil, fmt.Errorf("fcm send: %w", err)
	}
	log.Info("push sent", zap.Int("success", response.SuccessCount), zap.Int("failure", response.FailureCount))
	return convertResponses(response.Responses), nil
}

func convertResponses(responses []*messaging.SendResponse) []domain.Ticket {
	tickets := make([]domain.Ticket, len(responses))
	for i, resp := range responses {
		if resp.Success {
			tickets[i] = domain.Ticket{Status: domain.TicketStatusOk, Id: resp.MessageID}
			continue
		}
		tickets[i] = domain.Ticket{Status: domain.TicketStatusError}
		if resp.Error != nil {
			tickets[i].Message = resp.Error.Error()
			switch {
			case messaging.IsUnregistered(resp.Error):
				tickets[i].Error = domain.TicketErrDeviceNotRegistered
			case messaging.IsInvalidArgument(resp.Error):
				tickets[i].Error = "InvalidArgument"
			}
		}
	}
	return tickets
}

func buildFcmMessage(m domain.Message) *messaging.Message {
	return &messaging.Message{
		Token: m.To,
		Notification: &messaging.Notification{
			Title: m.Title,
			Body:  m.Body,
		},
		Data: m.Data,
		Android: &messaging.AndroidConfig{
			Priority: string(m.Priority),
			Notification: &messaging.AndroidNotification{
				Sound:     m.Sound,
				ChannelID: m.ChannelId,
			},
		},
	}
}
