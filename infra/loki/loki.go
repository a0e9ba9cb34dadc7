package loki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultFlushInterval = time.Second
	defaultBatchSize     = 20
)

// Writer buffers log lines and pushes them to Loki in batches.
type Writer struct {
	url           string
	labels        map[string]string
	client        *http.Client
	batchSize     int
	flushInterval time.Duration

	mu   sync.Mutex
	buf  [][2]string
	once sync.Once
	done chan struct{}
	wg   sync.WaitGroup
}

type Option func(*Writer)

func WithFlushInterval(interval time.Duration) Option {
	return func(w *Writer) {
		if interval > 0 {
			w.flushInterval = interval
		}
	}
}

func WithBatchSize(size int) Option {
	return func(w *Writer) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(w *Writer) { w.client = client }
}

// NewWriter returns a Writer pushing to baseURL (e.g. http://loki:3100)
// under the given stream labels. It returns nil when baseURL is empty.
func NewWriter(baseURL string, labels map[string]string, opts ...Option) *Writer {
	if baseURL == "" {
		return nil
	}
	w := &Writer{
		url:           strings.TrimSuffix(baseURL, "/") + "/loki/api/v1/push",
		labels:        labels,
		client:        &http.Client{Timeout: 5 * time.Second},
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.flushLoop()
	return w
}

// Write implements io.Writer. Each non-empty line becomes one Loki entry.
func (w *Writer) Write(p []byte) (int, error) {
	now := strconv.FormatInt(time.Now().UnixNano(), 10)

	w.mu.Lock()
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		w.buf = append(w.buf, [2]string{now, string(line)})
	}
	needFlush := len(w.buf) >= w.batchSize
	w.mu.Unlock()

	if needFlush {
		w.Flush(context.Background())
	}
	return len(p), nil
}

func (w *Writer) flushLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.Flush(context.Background())
		}
	}
}

// Flush pushes buffered lines. Push failures drop the batch; logging must
// never block the caller.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return nil
	}
	entries := w.buf
	w.buf = nil
	w.mu.Unlock()

	values := make([][]string, len(entries))
	for i, entry := range entries {
		values[i] = []string{entry[0], entry[1]}
	}
	raw, err := json.Marshal(pushRequest{Streams: []stream{{Stream: w.labels, Values: values}}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("loki push: %s", resp.Status)
	}
	return nil
}

// Close stops the background flusher and pushes what is left. It is safe to
// call more than once.
func (w *Writer) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.Flush(context.Background())
	})
	return err
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}
