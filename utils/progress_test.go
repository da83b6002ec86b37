package utils

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer read after the spinner stopped.
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

func TestProgressIndicator_AdvanceAndStop(t *testing.T) {
	out := &syncBuffer{}
	pi := NewProgressIndicator("Working...", 3, time.Millisecond)
	pi.writer = out

	pi.Start()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pi.Advance()
		}()
	}
	wg.Wait()
	time.Sleep(5 * time.Millisecond)

	pi.StopMsg = "done"
	pi.Stop()

	assert.Equal(t, 3, pi.done)
	assert.True(t, strings.HasSuffix(out.String(), "done"))
	assert.Contains(t, out.String(), "Working...")
}
