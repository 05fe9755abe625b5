package domain

import "time"

// PushRegistration binds a user to the device token notifications are delivered to.
type PushRegistration struct {
	UserId      string
	Token       string
	DeviceInfo  string
	LastUpdated time.Time
}

// Recipient is a single delivery address handed to the gateway.
type Recipient struct {
	Token      string
	DeviceInfo string
}

func RecipientsFromRegistrations(regs []PushRegistration) []Recipient {
	res := make([]Recipient, 0, len(regs))
	for _, r := range regs {
		res = append(res, Recipient{Token: r.Token, DeviceInfo: r.DeviceInfo})
	}
	return res
}
