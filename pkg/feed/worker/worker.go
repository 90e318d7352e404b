// file: pkg/feed/worker/worker.go
package worker

import (
	"context"
	"encoding/json"
	"log"

	"github.com/joripage/nbbo-book/pkg/feed/model"
	"github.com/joripage/nbbo-book/pkg/feed/repo"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
)

// Worker drains published quote events from JetStream into SQL.
type Worker struct {
	nbboChange repo.INbboChange
	execReport repo.IExecReport
}

func NewWorker(repo repo.IRepo) *Worker {
	return &Worker{
		nbboChange: repo.NbboChange(),
		execReport: repo.ExecReport(),
	}
}

func (w *Worker) StartNbboConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	cons, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		msgs, err := cons.Fetch(10)
		if err != nil {
			log.Println("Fetch error:", err)
			continue
		}

		for _, msg := range msgs {
			var record model.NbboChangeRecord
			if err := json.Unmarshal(msg.Data, &record); err != nil {
				log.Println("unmarshal err", err)
				_ = msg.Ack()
				continue
			}
			if _, err := w.nbboChange.Create(ctx, &record); err != nil {
				log.Println("create nbbo change err", err)
				continue
			}
			_ = msg.Ack()
		}
	}
}

func (w *Worker) StartExecConsumer(ctx context.Context, js nats.JetStreamContext, subject, durable string) error {
	cons, err := js.PullSubscribe(subject, durable)
	if err != nil {
		return err
	}

	for {
		msgs, err := cons.Fetch(10)
		if err != nil {
			log.Println("Fetch error:", err)
			continue
		}

		for _, msg := range msgs {
			var record model.ExecReportRecord
			if err := json.Unmarshal(msg.Data, &record); err != nil {
				log.Println("unmarshal err", err)
				_ = msg.Ack()
				continue
			}
			if _, err := w.execReport.Create(ctx, &record); err != nil {
				log.Println("create exec report err", err)
				continue
			}
			_ = msg.Ack()
		}
	}
}
