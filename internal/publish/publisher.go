package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/vk/zmkgrid/internal/keymap"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ErrClosed is returned by Publish after Close.
var ErrClosed = errors.New("publisher is closed")

// Publisher sends keymaps to a socket.io server over one connection.
// Publish calls are serialized.
type Publisher struct {
	opts   Options
	client *socket.Socket

	mu     sync.Mutex
	closed bool
}

// Connect dials the server described by opts and waits until the namespace
// connection is established, ctx is cancelled or opts.Timeout elapses.
func Connect(ctx context.Context, opts Options) (*Publisher, error) {
	opts = opts.withDefaults()
	logger := ctxlog.FromContext(ctx).With("component", "publisher", "url", opts.URL, "namespace", opts.Namespace)
	logger.Info("Connecting to visualizer...")

	baseURL, path, err := endpoint(opts.URL)
	if err != nil {
		return nil, err
	}

	sioOpts := socket.DefaultOptions()
	sioOpts.SetPath(path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sioOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sioOpts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	manager := socket.NewManager(baseURL, sioOpts)
	io := manager.Socket(opts.Namespace, sioOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("EVENT HANDLER: 'connect' event fired", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("EVENT HANDLER: 'connect_error' event fired", "error", err)
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(opts.Timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", opts.Timeout)
	}

	logger.Info("Connected to visualizer.", "sid", io.Id())
	return &Publisher{opts: opts, client: io}, nil
}

// Publish emits cfg and waits for the server to acknowledge that emit. The
// ack is tied to its own emit, so a late reply to an earlier timed-out publish
// is never taken for this one. A rejected ack comes back as an error carrying
// the server's message.
func (p *Publisher) Publish(ctx context.Context, cfg *keymap.KeymapConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	logger := ctxlog.FromContext(ctx).With("component", "publisher", "event", p.opts.Event, "sid", p.client.Id())

	data, err := payload(cfg)
	if err != nil {
		return err
	}

	type ack struct {
		args []any
		err  error
	}
	done := make(chan ack, 1)
	onAck := func(args []any, err error) {
		select {
		case done <- ack{args: args, err: err}:
		default:
		}
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		jsonData, _ := json.Marshal(data)
		logger.Debug("Emitting event", "bytes", len(jsonData))
	}
	if err := p.client.Timeout(p.opts.Timeout).Emit(p.opts.Event, data, onAck); err != nil {
		return fmt.Errorf("failed to emit event '%s': %w", p.opts.Event, err)
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("publish cancelled: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("no ack for event '%s' within %v: %w", p.opts.Event, p.opts.Timeout, res.err)
		}
		logger.Debug("EVENT HANDLER: ack received", "args", len(res.args))
		if err := ackError(res.args...); err != nil {
			return fmt.Errorf("visualizer rejected keymap: %w", err)
		}
		logger.Info("Keymap published.", "layers", len(cfg.Layers))
		return nil
	}
}

// Close disconnects the client. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.client.Disconnect()
	return nil
}
