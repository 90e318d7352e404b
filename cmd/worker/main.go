package main

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/joripage/nbbo-book/config"
	"github.com/joripage/nbbo-book/pkg/feed/model"
	"github.com/joripage/nbbo-book/pkg/feed/repo"
	"github.com/joripage/nbbo-book/pkg/feed/worker"
	postgres_wrapper "github.com/joripage/nbbo-book/pkg/infra/postgres"
	kafkawrapper "github.com/joripage/nbbo-book/pkg/kafka_wrapper"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx := context.Background()

	// NATS
	natsURL := nats.DefaultURL
	stream := "QUOTES"
	nbboSubject := "QUOTES.nbbo"
	execSubject := "QUOTES.exec"
	if cfg.Publisher != nil {
		if cfg.Publisher.NatsURL != "" {
			natsURL = cfg.Publisher.NatsURL
		}
		if cfg.Publisher.NatsStream != "" {
			stream = cfg.Publisher.NatsStream
		}
		if cfg.Publisher.NbboSubject != "" {
			nbboSubject = cfg.Publisher.NbboSubject
		}
		if cfg.Publisher.ExecSubject != "" {
			execSubject = cfg.Publisher.ExecSubject
		}
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		zap.S().Errorf("connect nats fail with err: %v", err)
		panic(err)
	}
	js, err := nc.JetStream()
	if err != nil {
		panic(err)
	}

	// Ensure stream
	_, _ = js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{stream + ".*"},
	})

	// init db
	db, err := postgres_wrapper.InitPostgres(cfg.FeedDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	// init repo
	sqlRepo := repo.NewRepo(db)

	// Worker
	w := worker.NewWorker(sqlRepo)
	go w.StartNbboConsumer(ctx, js, nbboSubject, "nbbo_worker") // nolint
	go w.StartExecConsumer(ctx, js, execSubject, "exec_worker") // nolint

	// Kafka leg: deployments that publish over Kafka instead of JetStream
	// drain the NBBO topic here. event_id is unique, so a double-configured
	// deployment inserts each change once.
	if cfg.Publisher != nil && len(cfg.Publisher.KafkaBrokers) > 0 {
		cg, err := kafkawrapper.NewConsumerGroup(kafkawrapper.ConsumerConfig{
			Brokers: cfg.Publisher.KafkaBrokers,
			GroupID: "nbbo_worker",
			Topic:   cfg.Publisher.NbboTopic,
		})
		if err != nil {
			zap.S().Errorf("init kafka consumer fail with err: %v", err)
			panic(err)
		}
		nbboRepo := sqlRepo.NbboChange()
		go func() {
			err := cg.Run(ctx, func(ctx context.Context, msg kafkawrapper.Message) error {
				var record model.NbboChangeRecord
				if err := json.Unmarshal(msg.Value, &record); err != nil {
					zap.S().Warnf("unmarshal nbbo change fail: %v", err)
					return nil
				}
				_, err := nbboRepo.Create(ctx, &record)
				return err
			})
			if err != nil {
				zap.S().Errorf("kafka consumer stopped with err: %v", err)
			}
		}()
	}

	select {}
}
