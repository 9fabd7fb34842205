package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ErrBufferFull is returned by Push when the pusher can't keep up with incoming entries.
var ErrBufferFull = errors.New("loki buffer is full, entry dropped")

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {
	// Url of the loki push endpoint, e.g. https://example-prod.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of log lines sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time an entry waits in the batch before being sent
	BatchMaxWait time.Duration `validate:"gte=1"`

	// BufferSize bounds the number of entries waiting to be batched
	BufferSize int `validate:"gte=1"`

	// Labels are attached to every stream
	Labels map[string]string

	// Optional multi-tenant header, skipped when TenantKey is empty
	TenantKey   string
	TenantValue string

	// Optional basic auth
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 500
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 1024
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level     string `json:"level"`
	Message   string `json:"msg"`
	Caller    string `json:"caller,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

type Pusher struct {
	config   Config
	ctx      context.Context
	cancel   context.CancelFunc
	client   *http.Client
	entries  chan LogEntry
	mu       sync.RWMutex
	stopped  bool
	done     chan struct{}
	batch    []streamValue
	logger   Logger
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values []streamValue     `json:"values"`
}

type streamValue [2]string

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:  cfg,
		ctx:     ctx,
		cancel:  cancel,
		client:  &http.Client{Timeout: 10 * time.Second},
		entries: make(chan LogEntry, cfg.BufferSize),
		done:    make(chan struct{}),
		batch:   make([]streamValue, 0, cfg.BatchMaxSize),
		logger:  logger,
	}

	go p.run()
	return p, nil
}

// Push enqueues an entry without blocking the caller.
func (p *Pusher) Push(e LogEntry) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return errors.New("loki pusher is stopped")
	}

	select {
	case p.entries <- e:
		return nil
	default:
		return ErrBufferFull
	}
}

// Stop flushes what is already queued and waits for the last request to finish.
func (p *Pusher) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.entries)
	p.mu.Unlock()

	<-p.done
	p.cancel()
}

func (p *Pusher) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case entry, ok := <-p.entries:
			if !ok {
				p.flush()
				return
			}
			p.batch = append(p.batch, newStreamValue(time.Now(), entry))
			if len(p.batch) >= p.config.BatchMaxSize {
				p.flush()
			}
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *Pusher) flush() {
	if len(p.batch) == 0 {
		return
	}
	if err := p.send(p.batch); err != nil {
		p.logger.Error("failed to send logs", "error", err, "lost", len(p.batch))
	}
	p.batch = p.batch[:0]
}

func newStreamValue(at time.Time, entry LogEntry) streamValue {
	line, _ := json.Marshal(entry)
	return streamValue{strconv.FormatInt(at.UnixNano(), 10), string(line)}
}

func (p *Pusher) send(values []streamValue) error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: []stream{{
		Stream: p.config.Labels,
		Values: values,
	}}}); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(p.ctx, http.MethodPost, p.config.Url, buf)
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

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected response from loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
