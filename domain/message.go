package domain

type Priority string

const (
	PriorityDefault Priority = "default"
	PriorityNormal  Priority = "normal"
	PriorityHigh    Priority = "high"
)

// Notification is the logical content of a fan-out.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Message is a notification addressed to a single token.
type Message struct {
	To        string
	Title     string
	Body      string
	Data      map[string]string
	Priority  Priority
	Sound     string
	ChannelId string
}

func NewMessage(to string, n Notification) Message {
	return Message{
		To:        to,
		Title:     n.Title,
		Body:      n.Body,
		Data:      n.Data,
		Priority:  PriorityHigh,
		Sound:     "default",
		ChannelId: "default",
	}
}

type TicketStatus string

const (
	TicketStatusOk    TicketStatus = "ok"
	TicketStatusError TicketStatus = "error"
)

// TicketErrDeviceNotRegistered is reported when the provider knows the token is dead.
const TicketErrDeviceNotRegistered = "DeviceNotRegistered"

type Ticket struct {
	Token   string       `json:"-"`
	Status  TicketStatus `json:"status"`
	Id      string       `json:"id,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type DeliveryStatus string

const (
	DeliveryStatusOk            DeliveryStatus = "ok"
	DeliveryStatusNoValidTokens DeliveryStatus = "no_valid_tokens"
	DeliveryStatusFailed        DeliveryStatus = "failed"
)

type DeliveryResult struct {
	Status    DeliveryStatus `json:"status"`
	Attempted int            `json:"attempted"`
	Delivered int            `json:"delivered"`
	Errors    int            `json:"errors"`
	Tickets   []Ticket       `json:"ticketDetail,omitempty"`

	// Error is set when the fan-out stopped before reaching the gateway.
	Error string `json:"error,omitempty"`
}
