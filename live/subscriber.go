package live

import (
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"innocrawl/models"
)

const MAX_RECONNECT_ATTEMPTS = 10
const BASE_RECONNECT_DELAY = 1000 * time.Millisecond
const MAX_RECONNECT_DELAY = 30 * time.Second

// ErrConnectionLost is the terminal signal delivered once reconnect attempts
// are exhausted. No automatic recovery happens after it; only a fresh
// Subscribe re-establishes a feed.
var ErrConnectionLost = errors.New("live status connection lost")

// State of one subscription.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateReconnecting
	StateClosed
)

// SnapshotFunc receives each status snapshot, strictly in arrival order.
type SnapshotFunc func(models.StatusSnapshot)

// ConnectionErrorFunc receives the single terminal connection-lost signal.
type ConnectionErrorFunc func(error)

// Subscriber opens live status feeds against one configured backend origin.
// The origin is injected at construction time, never read from global scope.
type Subscriber struct {
	baseURL string
	dialer  *websocket.Dialer

	// LegacyPath switches the feed address from /ws?job_id={id} to /ws/{id}
	// for older backends.
	LegacyPath bool
}

// NewSubscriber creates a Subscriber for the given backend base URL.
func NewSubscriber(baseURL string) *Subscriber {
	return &Subscriber{
		baseURL: baseURL,
		dialer:  websocket.DefaultDialer,
	}
}

// FeedURL returns the websocket address for a job's status feed.
func (s *Subscriber) FeedURL(jobID string) string {
	wsBase := strings.Replace(s.baseURL, "http", "ws", 1)
	if s.LegacyPath {
		return wsBase + "/ws/" + url.PathEscape(jobID)
	}
	return wsBase + "/ws?job_id=" + url.QueryEscape(jobID)
}

// Subscribe opens one streaming connection scoped to jobID and begins
// delivering snapshots to onSnapshot. Transient failures self-heal with
// bounded exponential backoff; once attempts are exhausted,
// onConnectionError fires exactly once with ErrConnectionLost.
//
// Callbacks are invoked on the subscription's delivery goroutine and must
// not call Unsubscribe re-entrantly.
func (s *Subscriber) Subscribe(jobID string, onSnapshot SnapshotFunc, onConnectionError ConnectionErrorFunc) *Subscription {
	sub := &Subscription{
		url:               s.FeedURL(jobID),
		dialer:            s.dialer,
		onSnapshot:        onSnapshot,
		onConnectionError: onConnectionError,
		delayFn:           reconnectDelay,
		state:             StateConnecting,
	}
	go sub.connect()
	return sub
}

// Subscription is one live feed for one job id. Its lifetime is bounded by
// the view that opened it: the view must Unsubscribe on teardown regardless
// of connection state.
type Subscription struct {
	url               string
	dialer            *websocket.Dialer
	onSnapshot        SnapshotFunc
	onConnectionError ConnectionErrorFunc
	delayFn           func(attempt int) time.Duration

	mu       sync.Mutex
	state    State
	conn     *websocket.Conn
	timer    *time.Timer
	attempts int
}

// State returns the subscription's current lifecycle state.
func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Unsubscribe cancels any pending reconnect timer and closes the active
// connection. After it returns, no further callbacks fire, even for a
// message already in flight. The underlying transport teardown may complete
// asynchronously. Safe to call more than once; no transition leaves Closed.
func (s *Subscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

func (s *Subscription) connect() {
	conn, resp, err := s.dialer.Dial(s.url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		log.Printf("[Subscriber] dial %s failed: %v", s.url, err)
		s.scheduleReconnectLocked()
		s.mu.Unlock()
		return
	}

	// Connection open: the attempt counter resets to zero.
	s.state = StateOpen
	s.conn = conn
	s.attempts = 0
	s.mu.Unlock()

	s.readLoop(conn)
}

// readLoop delivers snapshots sequentially until the connection drops.
// Delivery happens under the subscription lock, which is what makes the
// Unsubscribe no-further-callbacks guarantee hold.
func (s *Subscription) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			if s.state == StateClosed {
				s.mu.Unlock()
				return
			}
			s.conn = nil
			log.Printf("[Subscriber] connection closed: %v", err)
			s.scheduleReconnectLocked()
			s.mu.Unlock()
			return
		}

		var snap models.StatusSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			// Malformed messages are dropped; they do not touch connection
			// state and do not reach the caller.
			log.Printf("[Subscriber] dropping malformed status message: %v", err)
			continue
		}

		s.mu.Lock()
		if s.state == StateClosed {
			s.mu.Unlock()
			return
		}
		s.onSnapshot(snap)
		s.mu.Unlock()
	}
}

// scheduleReconnectLocked either arms the next backoff timer or, once the
// attempt ceiling is hit, goes terminal. Caller holds s.mu.
func (s *Subscription) scheduleReconnectLocked() {
	if s.attempts < MAX_RECONNECT_ATTEMPTS {
		s.attempts++
		delay := s.delayFn(s.attempts)
		s.state = StateReconnecting
		log.Printf("[Subscriber] reconnect attempt %d/%d in %v", s.attempts, MAX_RECONNECT_ATTEMPTS, delay)
		s.timer = time.AfterFunc(delay, s.connect)
		return
	}

	s.state = StateClosed
	log.Printf("[Subscriber] reconnect attempts exhausted, giving up")
	if s.onConnectionError != nil {
		s.onConnectionError(ErrConnectionLost)
	}
}

// reconnectDelay is min(1000ms * 2^attempt, 30s) for the 1-based attempt.
func reconnectDelay(attempt int) time.Duration {
	delay := BASE_RECONNECT_DELAY << uint(attempt)
	if delay <= 0 || delay > MAX_RECONNECT_DELAY {
		return MAX_RECONNECT_DELAY
	}
	return delay
}
