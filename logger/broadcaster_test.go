package logger

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterTeesOutput(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(&buf)
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	n, err := b.Write([]byte("[TEST] hello\n"))
	require.NoError(t, err)
	assert.Equal(t, len("[TEST] hello\n"), n)
	assert.Equal(t, "[TEST] hello\n", buf.String())
	assert.Equal(t, "[TEST] hello\n", <-ch)
}

func TestBroadcasterDropsWhenSubscriberIsFull(t *testing.T) {
	var buf bytes.Buffer
	b := NewBroadcaster(&buf)
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for i := 0; i < 150; i++ {
		_, err := fmt.Fprintf(b, "line %d\n", i)
		require.NoError(t, err)
	}

	assert.Len(t, ch, cap(ch))
	assert.Equal(t, "line 0\n", <-ch)
	assert.Contains(t, buf.String(), "line 149\n")
}

func TestBroadcasterUnsubscribeTwice(t *testing.T) {
	b := NewBroadcaster(&bytes.Buffer{})
	ch := b.Subscribe()
	assert.Equal(t, 1, b.Subscribers())

	b.Unsubscribe(ch)
	b.Unsubscribe(ch)
	assert.Equal(t, 0, b.Subscribers())

	_, open := <-ch
	assert.False(t, open)
}
