package app

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	logger := zerolog.Nop()
	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	metricsSrv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	err = serve(context.Background(), srv, metricsSrv, time.Second, &logger)
	assert.Error(t, err)
}

func TestServeStopsOnContext(t *testing.T) {
	logger := zerolog.Nop()
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, serve(ctx, srv, nil, time.Second, &logger))
}

func TestServeLogsMetricsShutdownError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	metricsSrv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
	})}
	go func() { _ = metricsSrv.Serve(ln) }()
	defer close(release)

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
		if err == nil {
			resp.Body.Close()
		}
	}()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("metrics request never arrived")
	}

	var out syncBuffer
	logger := zerolog.New(&out)
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, serve(ctx, srv, metricsSrv, 50*time.Millisecond, &logger))
	assert.Contains(t, out.String(), "metrics server shutdown")
}
