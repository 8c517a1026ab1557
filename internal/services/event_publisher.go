package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.uber.org/zap"
)

// EventSource identifies this service in published events
const EventSource = "app-cadastro"

// EventPublisher announces stored registrations to other systems
type EventPublisher interface {
	PublishFuncionarioCadastrado(ctx context.Context, funcionario models.Funcionario) error
	Close() error
}

// NoopEventPublisher drops every event; used when Kafka is disabled
type NoopEventPublisher struct{}

// PublishFuncionarioCadastrado does nothing
func (NoopEventPublisher) PublishFuncionarioCadastrado(ctx context.Context, funcionario models.Funcionario) error {
	observability.EventsPublished.WithLabelValues("disabled").Inc()
	return nil
}

// Close does nothing
func (NoopEventPublisher) Close() error { return nil }

// KafkaEventPublisher publishes registration events with a sarama sync producer
type KafkaEventPublisher struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	logger *logging.SafeLogger
	now    func() time.Time
}

// NewKafkaEventPublisher creates a publisher writing to topic
func NewKafkaEventPublisher(sp sarama.SyncProducer, topic string, logger *logging.SafeLogger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		sp:     sp,
		topic:  topic,
		source: EventSource,
		logger: logger.With(zap.String("component", "kafka_event_publisher")),
		now:    time.Now,
	}
}

// NewSaramaSyncProducer connects an idempotent sync producer to brokers
func NewSaramaSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_3_2_0
	cfg.ClientID = EventSource
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond

	sp, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return sp, nil
}

// PublishFuncionarioCadastrado sends a funcionario.cadastrado event keyed by CPF
func (p *KafkaEventPublisher) PublishFuncionarioCadastrado(ctx context.Context, funcionario models.Funcionario) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	ctx, span := utils.TraceExternalService(ctx, "kafka", "send_message")
	defer span.End()

	event := models.NewFuncionarioCadastradoEvent(funcionario, p.source, p.now())
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(funcionario.CPF),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-kind"), Value: []byte(models.EventFuncionarioCadastrado)},
			{Key: []byte("message-id"), Value: []byte(event.MessageID.String())},
			{Key: []byte("source"), Value: []byte(p.source)},
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}

	partition, offset, err := p.sp.SendMessage(msg)
	if err != nil {
		observability.EventsPublished.WithLabelValues("error").Inc()
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"kafka.topic": p.topic})
		p.logger.Error("failed to send kafka message",
			zap.Error(err),
			zap.String("topic", p.topic),
			zap.String("cpf", observability.MaskCPF(funcionario.CPF)),
			zap.Int("bytes", len(body)))
		return fmt.Errorf("send kafka message: %w", err)
	}

	observability.EventsPublished.WithLabelValues("success").Inc()
	utils.AddSpanAttribute(span, "kafka.partition", int(partition))
	p.logger.Info("kafka message sent",
		zap.String("topic", p.topic),
		zap.String("message_id", event.MessageID.String()),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}

// Close closes the underlying producer
func (p *KafkaEventPublisher) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}
