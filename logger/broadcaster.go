package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

// Broadcaster is an io.Writer that tees log output to an underlying writer and
// to every subscribed channel (admin websocket sessions).
type Broadcaster struct {
	mu          sync.Mutex
	out         io.Writer
	subscribers map[chan string]struct{}
}

var Instance = NewBroadcaster(os.Stdout)

func NewBroadcaster(out io.Writer) *Broadcaster {
	return &Broadcaster{
		out:         out,
		subscribers: make(map[chan string]struct{}),
	}
}

func (b *Broadcaster) Write(p []byte) (int, error) {
	msg := string(p)

	b.mu.Lock()
	defer b.mu.Unlock()

	n, err := b.out.Write(p)

	for ch := range b.subscribers {
		// slow readers drop lines instead of stalling the logger
		select {
		case ch <- msg:
		default:
		}
	}

	return n, err
}

// Subscribe registers a buffered channel that receives every log line.
func (b *Broadcaster) Subscribe() chan string {
	ch := make(chan string, 100)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan string) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Setup routes the standard logger through the shared broadcaster.
func Setup() {
	log.SetOutput(Instance)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
}
