package publish

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/zmkgrid/internal/config"
	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/vk/zmkgrid/internal/keymap"
	"github.com/vk/zmkgrid/internal/testutil"
	"github.com/vk/zmkgrid/internal/zmk"
	"github.com/zclconf/go-cty/cty"
	sio "github.com/zishang520/socket.io/v2/socket"
)

func TestEndpoint(t *testing.T) {
	testCases := []struct {
		raw      string
		wantBase string
		wantPath string
		wantErr  string
	}{
		{raw: "http://localhost:3000", wantBase: "http://localhost:3000", wantPath: "/socket.io/"},
		{raw: "http://localhost:3000/", wantBase: "http://localhost:3000", wantPath: "/socket.io/"},
		{raw: "https://viz.example.com/custom/socket.io", wantBase: "https://viz.example.com", wantPath: "/custom/socket.io/"},
		{raw: "ws://127.0.0.1:9000/socket.io/", wantBase: "ws://127.0.0.1:9000", wantPath: "/socket.io/"},
		{raw: "ftp://localhost", wantErr: "unsupported URL scheme"},
		{raw: "http://", wantErr: "has no host"},
		{raw: "http://[::1", wantErr: "failed to parse URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			base, path, err := endpoint(tc.raw)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantBase, base)
			assert.Equal(t, tc.wantPath, path)
		})
	}
}

func TestOptions(t *testing.T) {
	opts := OptionsFromSettings(config.New().PublishOrDefault())
	assert.Equal(t, Options{Namespace: "/", Event: "keymap:load", Timeout: 10 * time.Second}, opts)
	assert.Equal(t, opts, Options{}.withDefaults())
}

func TestPayload(t *testing.T) {
	cfg, err := zmk.ParseKeymapFile(testutil.CorneKeymap)
	require.NoError(t, err)

	data, err := payload(cfg)
	require.NoError(t, err)

	meta := data["metadata"].(map[string]any)
	assert.Equal(t, int64(42), meta["totalKeys"])
	assert.Equal(t, "Parsed ZMK Keymap", meta["name"])

	layers := data["layers"].([]any)
	require.Len(t, layers, 3)
	first := layers[0].(map[string]any)
	assert.Equal(t, "default_layer", first["name"])
	keys := first["keys"].(map[string]any)
	assert.Len(t, keys, 42)
	assert.Equal(t, map[string]any{"code": "TAB", "label": "⇥", "type": "keycode"}, keys["L0_R0C0"])

	// The socket.io client encodes arguments with encoding/json.
	_, err = json.Marshal(data)
	require.NoError(t, err)
}

func TestAckError(t *testing.T) {
	testCases := []struct {
		name    string
		args    []any
		wantErr string
	}{
		{name: "no args"},
		{name: "plain ack", args: []any{"ok"}},
		{name: "object without error", args: []any{map[string]any{"layers": float64(3)}}},
		{name: "empty error", args: []any{map[string]any{"error": ""}}},
		{name: "null error", args: []any{map[string]any{"error": nil}}},
		{name: "rejection", args: []any{map[string]any{"error": "layer count mismatch"}}, wantErr: "layer count mismatch"},
		{name: "error is not a string", args: []any{map[string]any{"error": float64(1)}}},
		{name: "rejection in later arg ignored", args: []any{"ok", map[string]any{"error": "late"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ackError(tc.args...)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestPlain(t *testing.T) {
	got, err := plain(cty.ObjectVal(map[string]cty.Value{
		"int":   cty.NumberIntVal(3),
		"set":   cty.SetVal([]cty.Value{cty.StringVal("a")}),
		"map":   cty.MapVal(map[string]cty.Value{"k": cty.StringVal("v")}),
		"float": cty.NumberFloatVal(1.5),
		"list":  cty.ListVal([]cty.Value{cty.True, cty.False}),
		"null":  cty.NullVal(cty.String),
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"int":   int64(3),
		"set":   []any{"a"},
		"map":   map[string]any{"k": "v"},
		"float": 1.5,
		"list":  []any{true, false},
		"null":  nil,
	}, got)
}

func TestConnect_InvalidURL(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	_, err := Connect(ctx, Options{URL: "ftp://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported URL scheme")
}

func TestPlain_Unknown(t *testing.T) {
	got, err := plain(cty.UnknownVal(cty.String))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = plain(cty.CapsuleVal(cty.Capsule("thing", reflect.TypeOf(0)), new(int)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

// startVisualizer serves a socket.io endpoint that hands every keymap event
// to handle, numbered from 1, and returns its base URL.
func startVisualizer(t *testing.T, handle func(call int, data map[string]any, ack sio.Ack)) string {
	t.Helper()

	srv := sio.NewServer(nil, nil)
	var calls atomic.Int32
	require.NoError(t, srv.On("connection", func(args ...any) {
		client := args[0].(*sio.Socket)
		client.On(config.DefaultEvent, func(args ...any) {
			if len(args) == 0 {
				return
			}
			ack, ok := args[len(args)-1].(sio.Ack)
			if !ok {
				return
			}
			data, _ := args[0].(map[string]any)
			handle(int(calls.Add(1)), data, ack)
		})
	}))

	ts := httptest.NewServer(srv.ServeHandler(nil))
	t.Cleanup(func() {
		srv.Close(nil)
		ts.Close()
	})
	return ts.URL
}

func connectTest(t *testing.T, url string) *Publisher {
	t.Helper()
	pub, err := Connect(ctxlog.Discard(context.Background()), Options{URL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })
	return pub
}

func corne(t *testing.T) *keymap.KeymapConfig {
	t.Helper()
	cfg, err := zmk.ParseKeymapFile(testutil.CorneKeymap)
	require.NoError(t, err)
	return cfg
}

func TestPublisher_Publish(t *testing.T) {
	testCases := []struct {
		name    string
		timeout time.Duration
		reply   func(ack sio.Ack)
		wantErr string
	}{
		{
			name:  "accepted",
			reply: func(ack sio.Ack) { ack([]any{map[string]any{"layers": 3}}, nil) },
		},
		{
			name:  "plain ack",
			reply: func(ack sio.Ack) { ack([]any{"ok"}, nil) },
		},
		{
			name:    "rejected",
			reply:   func(ack sio.Ack) { ack([]any{map[string]any{"error": "layer count mismatch"}}, nil) },
			wantErr: "visualizer rejected keymap: layer count mismatch",
		},
		{
			name:    "no ack",
			timeout: 200 * time.Millisecond,
			reply:   func(sio.Ack) {},
			wantErr: "no ack for event 'keymap:load' within 200ms",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			received := make(chan map[string]any, 1)
			url := startVisualizer(t, func(_ int, data map[string]any, ack sio.Ack) {
				received <- data
				tc.reply(ack)
			})
			pub := connectTest(t, url)
			if tc.timeout > 0 {
				pub.opts.Timeout = tc.timeout
			}
			ctx := ctxlog.Discard(context.Background())

			// Act
			err := pub.Publish(ctx, corne(t))

			// Assert
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			select {
			case data := <-received:
				layers, ok := data["layers"].([]any)
				require.True(t, ok, "layers in payload")
				assert.Len(t, layers, 3)
			case <-time.After(time.Second):
				t.Fatal("server did not receive the keymap")
			}
		})
	}
}

func TestPublisher_LateAckIsNotReused(t *testing.T) {
	// The first ack arrives after its publish timed out and while the second
	// publish is still waiting for its own ack.
	url := startVisualizer(t, func(call int, _ map[string]any, ack sio.Ack) {
		switch call {
		case 1:
			time.AfterFunc(800*time.Millisecond, func() {
				ack([]any{map[string]any{"error": "reply to the first publish"}}, nil)
			})
		default:
			time.AfterFunc(400*time.Millisecond, func() {
				ack([]any{map[string]any{"layers": 3}}, nil)
			})
		}
	})
	pub := connectTest(t, url)
	pub.opts.Timeout = 500 * time.Millisecond
	ctx := ctxlog.Discard(context.Background())
	cfg := corne(t)

	err := pub.Publish(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ack for event")

	assert.NoError(t, pub.Publish(ctx, cfg))
}

func TestPublisher_PublishCancelled(t *testing.T) {
	url := startVisualizer(t, func(int, map[string]any, sio.Ack) {})
	pub := connectTest(t, url)

	ctx, cancel := context.WithCancel(ctxlog.Discard(context.Background()))
	time.AfterFunc(100*time.Millisecond, cancel)

	err := pub.Publish(ctx, corne(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "publish cancelled")
}

func TestPublisher_Close(t *testing.T) {
	url := startVisualizer(t, func(_ int, _ map[string]any, ack sio.Ack) { ack([]any{"ok"}, nil) })
	pub := connectTest(t, url)
	ctx := ctxlog.Discard(context.Background())

	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close())

	err := pub.Publish(ctx, corne(t))
	assert.ErrorIs(t, err, ErrClosed)
}
