package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ErrBufferFull is returned by Push when the pusher can't keep up or was stopped.
var ErrBufferFull = errors.New("loki: entry buffer is full")

type Logger interface {
	Error(msg string, args ...any)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {

	// TenantKey and TenantValue form an optional tenant header for multi-tenant Loki setups.
	TenantKey   string
	TenantValue string

	// Url of the push endpoint, e.g. https://example-prod.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of log lines that are sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time to wait before sending a request
	BatchMaxWait time.Duration `validate:"gte=1"`

	// BufferSize is the number of entries Push can queue before dropping
	BufferSize int `validate:"gte=1"`

	// Labels that are added to all log lines
	Labels map[string]string

	// Username and Password enable basic auth when both are set.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 4 * cfg.BatchMaxSize
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
	Caller    string    `json:"caller,omitempty"`
	ErrorType string    `json:"error_type,omitempty"`
	Time      time.Time `json:"-"`
}

type Pusher struct {
	config    *Config
	ctx       context.Context
	cancel    context.CancelFunc
	client    HTTPClient
	entries   chan LogEntry
	stopOnce  sync.Once
	waitGroup sync.WaitGroup
	logsBatch []streamValue
	logger    Logger
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values []streamValue     `json:"values"`
}

type streamValue []string

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {
	return NewWithClient(ctx, cfg, logger, &http.Client{Timeout: 10 * time.Second})
}

func NewWithClient(ctx context.Context, cfg Config, logger Logger, client HTTPClient) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:    &cfg,
		ctx:       ctx,
		cancel:    cancel,
		client:    client,
		entries:   make(chan LogEntry, cfg.BufferSize),
		logsBatch: make([]streamValue, 0, cfg.BatchMaxSize),
		logger:    logger,
	}

	p.waitGroup.Add(1)
	go p.run()
	return p, nil
}

// Push queues the entry without blocking the caller.
func (p *Pusher) Push(e LogEntry) error {
	if p.ctx.Err() != nil {
		return ErrBufferFull
	}
	select {
	case p.entries <- e:
		return nil
	default:
		return ErrBufferFull
	}
}

// Stop flushes queued entries and waits for the last batch to be sent.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		p.cancel()
		p.waitGroup.Wait()
	})
}

func (p *Pusher) run() {
	defer p.waitGroup.Done()

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			p.drain()
			return
		case entry := <-p.entries:
			p.logsBatch = append(p.logsBatch, newLog(entry))
			if len(p.logsBatch) >= p.config.BatchMaxSize {
				p.flush(p.ctx)
			}
		case <-ticker.C:
			p.flush(p.ctx)
		}
	}
}

func (p *Pusher) drain() {
	for {
		select {
		case entry := <-p.entries:
			p.logsBatch = append(p.logsBatch, newLog(entry))
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			p.flush(ctx)
			return
		}
	}
}

func (p *Pusher) flush(ctx context.Context) {
	if len(p.logsBatch) == 0 {
		return
	}
	if err := p.send(ctx); err != nil {
		p.logger.Error("failed to send logs", "error", err)
	}
	p.logsBatch = p.logsBatch[:0]
}

func newLog(entry LogEntry) streamValue {
	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(entry.Message)
	}
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return streamValue{strconv.FormatInt(ts.UnixNano(), 10), string(line)}
}

func (p *Pusher) send(ctx context.Context) error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: []stream{{
		Stream: p.config.Labels,
		Values: p.logsBatch,
	}}}); err != nil {
		return err
	}

	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.config.TenantKey != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}

	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("received unexpected response code from Loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
