package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// ProgressIndicator is a terminal spinner followed by a done/total counter.
type ProgressIndicator struct {
	mu         sync.Mutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	done       int
	total      int
	StopMsg    string
	stopChan   chan struct{}
	stopped    chan struct{}
}

const (
	successColor = "\x1b[32m"
	defaultColor = "\x1b[0m"
)

// NewProgressIndicator instantiates a new progress indicator for total
// units of work, writing to stderr.
func NewProgressIndicator(msg string, total int, d time.Duration) *ProgressIndicator {
	return &ProgressIndicator{
		delay:    d,
		writer:   os.Stderr,
		message:  msg,
		total:    total,
		stopChan: make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start starts the spinner.
func (pi *ProgressIndicator) Start() {
	go func() {
		defer close(pi.stopped)
		for {
			for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
				select {
				case <-pi.stopChan:
					return
				default:
				}
				pi.mu.Lock()
				pi.clear()
				output := fmt.Sprintf("\r%s%s %c%s", pi.message, successColor, r, defaultColor)
				if pi.total > 1 {
					output += fmt.Sprintf(" %d/%d", pi.done, pi.total)
				}
				fmt.Fprint(pi.writer, output)
				pi.lastOutput = output
				pi.mu.Unlock()

				time.Sleep(pi.delay)
			}
		}
	}()
}

// Advance marks one more unit of work as done. It is safe to call from
// several goroutines.
func (pi *ProgressIndicator) Advance() {
	pi.mu.Lock()
	pi.done++
	pi.mu.Unlock()
}

// Stop stops the spinner and prints StopMsg, if any.
func (pi *ProgressIndicator) Stop() {
	close(pi.stopChan)
	<-pi.stopped

	pi.mu.Lock()
	defer pi.mu.Unlock()

	pi.clear()
	if len(pi.StopMsg) > 0 {
		fmt.Fprint(pi.writer, pi.StopMsg)
	}
}

// clear deletes the last line. Caller must hold the lock.
func (pi *ProgressIndicator) clear() {
	n := utf8.RuneCountInString(pi.lastOutput)
	if n == 0 {
		return
	}
	if runtime.GOOS == "windows" {
		fmt.Fprint(pi.writer, "\r"+strings.Repeat(" ", n)+"\r")
		pi.lastOutput = ""
		return
	}
	fmt.Fprint(pi.writer, "\r\033[K") // clear line
	pi.lastOutput = ""
}
