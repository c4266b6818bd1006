package workers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

const DefaultReportStream = "interview:completed"

// ReportBuilder is satisfied by services.ReportService.
type ReportBuilder interface {
	Build(ctx context.Context, code string) (*models.Report, error)
}

// ReportWorkerPool consumes completed-session events from a Redis stream
// and stores a report for each one.
type ReportWorkerPool struct {
	Redis      *redis.Client
	Reports    ReportBuilder
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string

	MaxAttempts int
	RetryDelay  time.Duration

	wg sync.WaitGroup
}

func (p *ReportWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Reports == nil {
		return errors.New("ReportWorkerPool missing dependency: Redis/Reports must be set")
	}
	p.defaults()

	if err := p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err(); err != nil && !isBusyGroup(err) {
		return err
	}

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.runConsumer(ctx, consumer)
		}()
	}
	p.Logger.WithFields(logrus.Fields{
		"stream":  p.Stream,
		"group":   p.Group,
		"workers": p.NumWorkers,
	}).Info("report workers started")
	return nil
}

// Wait blocks until every consumer has returned after its context ended.
func (p *ReportWorkerPool) Wait() { p.wg.Wait() }

func (p *ReportWorkerPool) defaults() {
	if p.Stream == "" {
		p.Stream = DefaultReportStream
	}
	if p.Group == "" {
		p.Group = "report-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "r"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.RetryDelay <= 0 {
		p.RetryDelay = time.Second
	}
	if p.Logger == nil {
		p.Logger = logrus.StandardLogger()
	}
}

func (p *ReportWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			p.Logger.WithError(err).WithField("consumer", consumer).Warn("xreadgroup failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handle(ctx, msg.ID, msg.Values)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

// handle builds the report for one event. NOT_FOUND and CONFLICT are final;
// other failures are retried up to MaxAttempts before the event is dropped.
func (p *ReportWorkerPool) handle(ctx context.Context, id string, values map[string]any) {
	code, _ := values["code"].(string)
	log := p.Logger.WithFields(logrus.Fields{"redis_id": id, "code": code})
	if code == "" {
		log.Warn("completion event without code")
		return
	}

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		_, err := p.Reports.Build(ctx, code)
		if err == nil {
			return
		}
		switch utils.CodeOf(err) {
		case utils.CodeNotFound, utils.CodeConflict:
			log.WithError(err).Warn("report skipped")
			return
		}
		log.WithError(err).WithField("attempt", attempt).Error("report build failed")
		if attempt == p.MaxAttempts {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.RetryDelay):
		}
	}
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// StreamPublisher announces completed sessions on the report stream.
type StreamPublisher struct {
	Redis  *redis.Client
	Stream string
	MaxLen int64
}

func (p *StreamPublisher) PublishCompleted(ctx context.Context, code string) error {
	stream := p.Stream
	if stream == "" {
		stream = DefaultReportStream
	}
	maxLen := p.MaxLen
	if maxLen <= 0 {
		maxLen = 10000
	}
	return p.Redis.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: maxLen,
		Approx: true,
		Values: map[string]any{
			"code":         code,
			"completed_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
}

// InlinePublisher builds the report in a background goroutine when no
// stream is available.
type InlinePublisher struct {
	Reports ReportBuilder
	Logger  *logrus.Logger
	Timeout time.Duration

	wg sync.WaitGroup
}

func (p *InlinePublisher) PublishCompleted(ctx context.Context, code string) error {
	if p.Reports == nil {
		return errors.New("InlinePublisher missing dependency: Reports must be set")
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	log := p.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	// the request that completed the session returns before the report is built
	bg := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(bg, timeout)
		defer cancel()
		if _, err := p.Reports.Build(ctx, code); err != nil {
			log.WithError(err).WithField("code", code).Error("inline report build failed")
		}
	}()
	return nil
}

// Wait blocks until every in-flight build has finished.
func (p *InlinePublisher) Wait() { p.wg.Wait() }
