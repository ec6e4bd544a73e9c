package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"ms-booths/internal/models"

	"github.com/segmentio/kafka-go"
)

// Topic names for booth domain events.
const (
	TopicBoothReserved   = "expo.booths.reserved"
	TopicBoothStatus     = "expo.booths.status"
	TopicCategoryChanged = "expo.categories.changed"
)

// Producer streams booth domain events. A Producer with a nil Writer is a
// no-op, used when Kafka is disabled by configuration.
type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

// NewDisabledProducer returns a producer that drops every event.
func NewDisabledProducer() *Producer {
	return &Producer{}
}

func (p *Producer) Publish(topic, key string, value []byte) error {
	if p.Writer == nil {
		return nil
	}
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
		},
	)
}

type statusEvent struct {
	BoothID      string             `json:"boothId"`
	Number       int                `json:"number"`
	Status       models.BoothStatus `json:"status"`
	EnterpriseID *string            `json:"enterpriseId"`
}

// PublishBoothReserved streams a booking event.
func (p *Producer) PublishBoothReserved(booth models.Booth) error {
	msgBytes, err := json.Marshal(statusEvent{
		BoothID:      booth.ID,
		Number:       booth.Number,
		Status:       booth.Status,
		EnterpriseID: booth.EnterpriseID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Publishing to Kafka [%s]: %s\n", TopicBoothReserved, string(msgBytes))
	return p.Publish(TopicBoothReserved, booth.ID, msgBytes)
}

// PublishBoothStatusChanged streams an admin accept/reject/reset decision.
func (p *Producer) PublishBoothStatusChanged(booth models.Booth) error {
	msgBytes, err := json.Marshal(statusEvent{
		BoothID:      booth.ID,
		Number:       booth.Number,
		Status:       booth.Status,
		EnterpriseID: booth.EnterpriseID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Publishing to Kafka [%s]: %s\n", TopicBoothStatus, string(msgBytes))
	return p.Publish(TopicBoothStatus, booth.ID, msgBytes)
}

type categoryEvent struct {
	Action   string          `json:"action"`
	Category models.Category `json:"category"`
}

// PublishCategoryChanged streams a category create/update/delete.
func (p *Producer) PublishCategoryChanged(action string, category models.Category) error {
	msgBytes, err := json.Marshal(categoryEvent{Action: action, Category: category})
	if err != nil {
		return err
	}

	fmt.Printf("Publishing to Kafka [%s]: %s\n", TopicCategoryChanged, string(msgBytes))
	return p.Publish(TopicCategoryChanged, category.ID, msgBytes)
}

func (p *Producer) Close() error {
	if p.Writer == nil {
		return nil
	}
	return p.Writer.Close()
}
