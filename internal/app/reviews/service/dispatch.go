package service

import (
	"context"
	"fmt"
	"time"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/infrastructure"
	"vipreviews/pkg/metrics"
)

const defaultInviteMessage = "Thank you for riding with us! We'd love to hear about your experience"

// Dispatcher доставляет приглашения по каналам sms и email
type Dispatcher struct {
	senders map[entity.Channel]infrastructure.MessageSender
}

func NewDispatcher(sms, email infrastructure.MessageSender) *Dispatcher {
	return &Dispatcher{
		senders: map[entity.Channel]infrastructure.MessageSender{
			entity.ChannelSMS:   sms,
			entity.ChannelEmail: email,
		},
	}
}

// Dispatch отправляет одно приглашение. Ошибка отправки не фатальна
// для рассылки в целом, вызывающая сторона решает, что с ней делать.
func (d *Dispatcher) Dispatch(ctx context.Context, channel entity.Channel, destination, message, link string) error {
	sender, ok := d.senders[channel]
	if !ok || sender == nil {
		return ErrInvalidChannel
	}

	if message == "" {
		message = defaultInviteMessage
	}

	subject := "We'd love your feedback"
	body := fmt.Sprintf("%s: %s", message, link)

	start := time.Now()
	err := sender.Send(ctx, destination, subject, body)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordDispatch(string(channel), status, sender.Mode(), time.Since(start))

	if err != nil {
		return fmt.Errorf("failed to dispatch %s message: %w", channel, err)
	}
	return nil
}

// Mode возвращает режим работы канала (live или simulated)
func (d *Dispatcher) Mode(channel entity.Channel) string {
	if sender, ok := d.senders[channel]; ok && sender != nil {
		return sender.Mode()
	}
	return "unknown"
}
