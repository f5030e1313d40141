// Package audit mirrors recorded audit entries to external sinks.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/baharkarakas/onboarding-backend/internal/models"
)

// Publisher ships one entry to a sink. Implementations may block; callers run
// them off the request path.
type Publisher interface {
	Publish(ctx context.Context, e models.AuditLogEntry) error
	Close()
}

type Nop struct{}

func (Nop) Publish(context.Context, models.AuditLogEntry) error { return nil }
func (Nop) Close()                                             {}

type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaPublisher{client: cl, topic: topic}, nil
}

// Event is the wire form written to the topic. Records are keyed by
// requirement id so one requirement's history stays in one partition.
type Event struct {
	Type  string               `json:"type"`
	Entry models.AuditLogEntry `json:"entry"`
}

func Encode(e models.AuditLogEntry) (key, value []byte, err error) {
	value, err = json.Marshal(Event{Type: "requirement.audit", Entry: e})
	if err != nil {
		return nil, nil, err
	}
	return []byte(strconv.FormatInt(e.RequirementID, 10)), value, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, e models.AuditLogEntry) error {
	key, value, err := Encode(e)
	if err != nil {
		return err
	}
	rec := &kgo.Record{Topic: p.topic, Key: key, Value: value}
	return p.client.ProduceSync(ctx, rec).FirstErr()
}

func (p *KafkaPublisher) Close() { p.client.Close() }
