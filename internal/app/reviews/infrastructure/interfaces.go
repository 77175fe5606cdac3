package infrastructure

import "context"

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key []byte, value []byte) error
	Close() error
}

// MessageSender интерфейс одного канала доставки (SMS или email).
// Send выполняет ровно одну попытку и возвращает ошибку при отказе
// провайдера; ретраев на этом уровне нет.
type MessageSender interface {
	Send(ctx context.Context, destination string, subject string, body string) error
	Mode() string // live или simulated
}
