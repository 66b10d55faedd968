package kafka

import (
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"sortline/internal/domain/entity"
)

const DefaultTopic = "sortline.events"

// Producer экспортирует события классификации в Kafka
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewProducer создаёт продюсер с настройками
func NewProducer(brokers []string, topic string, logger *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.ClientID = "sortline"

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, errors.Wrap(err, "create kafka producer")
	}

	return newProducer(producer, topic, logger), nil
}

func newProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Producer {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{producer: producer, topic: topic, logger: logger}
}

// Publish отправляет одно событие; ключ сообщения - метка класса
func (p *Producer) Publish(ev entity.ClassificationEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.Label),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return errors.Wrapf(err, "send event to topic %s", p.topic)
	}
	return nil
}

// Export публикует событие и только логирует ошибку: экспорт не должен тормозить линию
func (p *Producer) Export(ev entity.ClassificationEvent) {
	if err := p.Publish(ev); err != nil {
		p.logger.Warn("kafka export failed", "label", ev.Label, "err", err)
	}
}

func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return errors.Wrap(err, "close kafka producer")
	}
	return nil
}
