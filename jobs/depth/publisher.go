// Package depth periodically publishes the aggregated level view of
// the book to the market-data topic.
package depth

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"lob/domain/book"
	"lob/infra/kafka"
)

// Source is anything that can produce a level view; in practice the
// order service.
type Source interface {
	Depth() book.LevelBook
}

type Publisher struct {
	src      Source
	producer *kafka.Producer
	interval time.Duration
	log      *zap.Logger
}

type depthMessage struct {
	V    int              `json:"v"`
	Time int64            `json:"time"`
	Bids []book.LevelInfo `json:"bids"`
	Asks []book.LevelInfo `json:"asks"`
}

func New(src Source, producer *kafka.Producer, interval time.Duration, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{
		src:      src,
		producer: producer,
		interval: interval,
		log:      log,
	}
}

func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishOnce(ctx)
		}
	}
}

func (p *Publisher) publishOnce(ctx context.Context) {
	lb := p.src.Depth()
	msg := depthMessage{
		V:    1,
		Time: time.Now().UnixNano(),
		Bids: lb.Bids,
		Asks: lb.Asks,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		p.log.Error("depth marshal failed", zap.Error(err))
		return
	}
	if err := p.producer.Send(ctx, []byte("depth"), payload); err != nil {
		p.log.Warn("depth publish failed", zap.Error(err))
	}
}
