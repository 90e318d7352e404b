package feed

import (
	"context"
	"encoding/json"

	"github.com/cenkalti/backoff"
	"github.com/joripage/nbbo-book/pkg/feed/model"
	kafkawrapper "github.com/joripage/nbbo-book/pkg/kafka_wrapper"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type PublisherConfig struct {
	KafkaBrokers []string `yaml:"kafka_brokers"`
	NbboTopic    string   `yaml:"nbbo_topic"`

	NatsURL          string `yaml:"nats_url"`
	NatsStream       string `yaml:"nats_stream"`
	NbboSubject      string `yaml:"nbbo_subject"`
	ExecSubject      string `yaml:"exec_subject"`
	DisableJetStream bool   `yaml:"disable_jetstream"`
}

// Publisher pushes NBBO changes and execution reports out of the process:
// Kafka for downstream consumers, NATS JetStream for the persistence worker.
// Either leg may be absent.
type Publisher struct {
	producer *kafkawrapper.Producer
	topic    string

	js          nats.JetStreamContext
	nbboSubject string
	execSubject string
}

func NewPublisher(cfg *PublisherConfig) (*Publisher, error) {
	p := &Publisher{
		topic:       cfg.NbboTopic,
		nbboSubject: cfg.NbboSubject,
		execSubject: cfg.ExecSubject,
	}

	if len(cfg.KafkaBrokers) > 0 {
		p.producer = kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
			Brokers: cfg.KafkaBrokers,
		})
	}

	if cfg.NatsURL != "" && !cfg.DisableJetStream {
		var nc *nats.Conn
		boff := backoff.NewExponentialBackOff()
		err := backoff.Retry(func() error {
			var errNested error
			nc, errNested = nats.Connect(cfg.NatsURL)
			if errNested != nil {
				zap.S().Warnf("connect nats fail: %v", errNested)
			}
			return errNested
		}, boff)
		if err != nil {
			return nil, err
		}

		js, err := nc.JetStream()
		if err != nil {
			return nil, err
		}
		_, _ = js.AddStream(&nats.StreamConfig{
			Name:     cfg.NatsStream,
			Subjects: []string{cfg.NatsStream + ".*"},
		})
		p.js = js
	}

	return p, nil
}

// PublishNbbo publishes a change record, keyed by symbol so per-symbol
// ordering survives partitioning.
func (p *Publisher) PublishNbbo(ctx context.Context, record *model.NbboChangeRecord) error {
	if p.producer != nil {
		if err := p.producer.PublishJSON(ctx, p.topic, record.Symbol, record, nil); err != nil {
			return err
		}
	}
	if p.js != nil {
		b, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if _, err := p.js.Publish(p.nbboSubject, b); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) PublishExec(ctx context.Context, record *model.ExecReportRecord) error {
	if p.js == nil {
		return nil
	}
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(p.execSubject, b)
	return err
}

func (p *Publisher) Close(ctx context.Context) error {
	if p.producer != nil {
		return p.producer.Close(ctx)
	}
	return nil
}
