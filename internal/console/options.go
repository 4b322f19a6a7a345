package console

import (
	"time"

	"github.com/dshills/conio/internal/ansi"
	"github.com/dshills/conio/internal/input/key"
	"github.com/dshills/conio/internal/input/mouse"
	"github.com/dshills/conio/internal/logging"
)

// Default timings.
const (
	DefaultEscapeTimeout  = 50 * time.Millisecond
	DefaultRequestTimeout = time.Second
)

// KeyHandler receives decoded key events.
type KeyHandler func(key.Event)

// MouseHandler receives raw and synthesized mouse events.
type MouseHandler func(mouse.Event)

// ResponseHandler receives every completed request's response.
type ResponseHandler func(*ansi.Request, ansi.Response)

type options struct {
	logger         *logging.Logger
	clickWindow    time.Duration
	clickTolerance int
	escapeTimeout  time.Duration
	requestTimeout time.Duration
	onKey          KeyHandler
	onMouse        MouseHandler
	onResponse     ResponseHandler
}

func defaultOptions() options {
	return options{
		logger:         logging.Discard(),
		clickWindow:    mouse.DefaultClickWindow,
		clickTolerance: mouse.DefaultClickTolerance,
		escapeTimeout:  DefaultEscapeTimeout,
		requestTimeout: DefaultRequestTimeout,
	}
}

// Option configures a Loop.
type Option func(*options)

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logging.Discard()
		}
		o.logger = l
	}
}

// WithClickWindow sets the maximum press-to-release and
// release-to-release interval for clicks. Non-positive values keep the
// default.
func WithClickWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.clickWindow = d
		}
	}
}

// WithClickTolerance sets how far, in cells, the pointer may move within
// a click. Negative values keep the default.
func WithClickTolerance(cells int) Option {
	return func(o *options) {
		if cells >= 0 {
			o.clickTolerance = cells
		}
	}
}

// WithEscapeTimeout sets how long a lone ESC waits for the rest of a
// sequence before it is delivered as the Escape key.
func WithEscapeTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.escapeTimeout = d
		}
	}
}

// WithRequestTimeout sets how long Send waits for a reply.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithKeyHandler sets the key handler.
func WithKeyHandler(h KeyHandler) Option {
	return func(o *options) { o.onKey = h }
}

// WithMouseHandler sets the mouse handler.
func WithMouseHandler(h MouseHandler) Option {
	return func(o *options) { o.onMouse = h }
}

// WithResponseHandler sets the response handler.
func WithResponseHandler(h ResponseHandler) Option {
	return func(o *options) { o.onResponse = h }
}
