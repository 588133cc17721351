package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/Govind-619/SlotPay/utils"
	"github.com/segmentio/kafka-go"
)

var (
	ErrProducerClosed = errors.New("kafka producer closed")
	ErrBufferFull     = errors.New("kafka producer buffer full")
)

const writeTimeout = 5 * time.Second

// KafkaPublisher queues events in memory and writes them from a single
// goroutine so the webhook path never waits on the broker.
type KafkaPublisher struct {
	w        *kafka.Writer
	producer string
	inbox    chan kafka.Message
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic, producer string, buf int) *KafkaPublisher {
	if buf <= 0 {
		buf = 256
	}
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		producer: producer,
		inbox:    make(chan kafka.Message, buf),
		done:     make(chan struct{}),
	}
}

// Start runs the writer loop until Close
func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				utils.LogError("Failed to publish %s for order %s: %v", headerValue(m, "x-event-type"), string(m.Key), err)
			}
			cancel()
		}
		if err := p.w.Close(); err != nil {
			utils.LogError("Failed to close kafka writer: %v", err)
		}
	}()
}

func (p *KafkaPublisher) PublishSlotsCredited(ctx context.Context, evt SlotsCredited) error {
	m, err := p.message(EventSlotsCredited, evt.RazorpayOrderID, evt)
	if err != nil {
		return err
	}
	return p.enqueue(ctx, m)
}

func (p *KafkaPublisher) message(eventType, orderID string, payload any) (kafka.Message, error) {
	env, err := NewEnvelope(p.producer, eventType, orderID, payload)
	if err != nil {
		return kafka.Message{}, err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(orderID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(eventType)},
			{Key: "x-event-version", Value: []byte(strconv.Itoa(env.EventVersion))},
		},
	}, nil
}

func (p *KafkaPublisher) enqueue(ctx context.Context, m kafka.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}
	select {
	case p.inbox <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// Close stops accepting events, flushes the queue and closes the writer
func (p *KafkaPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.done
}

func headerValue(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
