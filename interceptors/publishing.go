package interceptors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange is the topic exchange call events are published to
const DefaultExchange = "callbacks.events"

// Publisher is the subset of *amqp.Channel the publishing interceptor needs
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// CallEvent is the JSON body of a published call event
type CallEvent struct {
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	Outcome    Outcome   `json:"outcome"`
	Args       string    `json:"args"`
	Depth      int       `json:"depth"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMS float64   `json:"durationMs"`
	Error      string    `json:"error,omitempty"`
	Failures   []string  `json:"failures,omitempty"`
}

// PublishingInterceptor publishes a CallEvent for every finished call
type PublishingInterceptor struct {
	publisher Publisher
	exchange  string
	timeout   time.Duration
	logger    *slog.Logger
}

// PublishingOption configures the publishing interceptor
type PublishingOption func(*PublishingInterceptor)

// WithExchange sets the exchange events are published to
func WithExchange(exchange string) PublishingOption {
	return func(i *PublishingInterceptor) {
		i.exchange = exchange
	}
}

// WithPublishTimeout bounds each publish
func WithPublishTimeout(timeout time.Duration) PublishingOption {
	return func(i *PublishingInterceptor) {
		i.timeout = timeout
	}
}

// WithPublishingLogger sets the logger used to report publish failures
func WithPublishingLogger(logger *slog.Logger) PublishingOption {
	return func(i *PublishingInterceptor) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewPublishingInterceptor creates a new publishing interceptor
func NewPublishingInterceptor(publisher Publisher, opts ...PublishingOption) *PublishingInterceptor {
	i := &PublishingInterceptor{
		publisher: publisher,
		exchange:  DefaultExchange,
		timeout:   5 * time.Second,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Before implements Interceptor
func (i *PublishingInterceptor) Before(*Call) {}

// After implements Interceptor. Publish failures are logged and never reach
// the caller of the observed target.
func (i *PublishingInterceptor) After(call *Call) {
	event := NewCallEvent(call)
	body, err := json.Marshal(event)
	if err != nil {
		i.logger.Error("failed to encode call event", "target", call.Target, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), i.timeout)
	defer cancel()

	key := RoutingKey(call)
	err = i.publisher.PublishWithContext(ctx, i.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		MessageId:    event.ID,
		Timestamp:    call.Finished,
		Type:         "callbacks.call",
		Body:         body,
	})
	if err != nil {
		i.logger.Error("failed to publish call event",
			"exchange", i.exchange,
			"routingKey", key,
			"error", err,
		)
	}
}

// Name implements Interceptor
func (i *PublishingInterceptor) Name() string {
	return "PublishingInterceptor"
}

// NewCallEvent builds the event published for call
func NewCallEvent(call *Call) CallEvent {
	event := CallEvent{
		ID:         uuid.NewString(),
		Target:     call.Target,
		Outcome:    call.Outcome(),
		Args:       call.Args.String(),
		Depth:      call.Depth,
		StartedAt:  call.Started,
		DurationMS: float64(call.Duration()) / float64(time.Millisecond),
	}
	if call.Err != nil {
		event.Error = call.Err.Error()
	}
	for _, err := range call.Failures {
		event.Failures = append(event.Failures, err.Error())
	}
	return event
}

// RoutingKey returns "callbacks.<target>.<outcome>" with dots in the target
// name replaced so topic bindings stay three words long
func RoutingKey(call *Call) string {
	target := strings.ReplaceAll(call.Target, ".", "_")
	return fmt.Sprintf("callbacks.%s.%s", target, call.Outcome())
}

// DialChannel connects to url, opens a channel and declares exchange as a
// durable topic exchange. Closing the returned connection closes the channel.
func DialChannel(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return conn, ch, nil
}
