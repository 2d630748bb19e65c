package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/touch-widgets/internal/gesture"
)

// Feed carries touch samples produced outside the program, such as the
// remote touch feed, into Update.
type Feed struct {
	samples chan gesture.Sample
	done    chan struct{}
	once    sync.Once
}

// NewFeed returns a feed buffering up to size samples.
func NewFeed(size int) *Feed {
	return &Feed{
		samples: make(chan gesture.Sample, max(size, 0)),
		done:    make(chan struct{}),
	}
}

// Push queues s, blocking while the buffer is full. Samples pushed after
// Close are dropped.
func (f *Feed) Push(s gesture.Sample) {
	select {
	case <-f.done:
		return
	default:
	}
	select {
	case f.samples <- s:
	case <-f.done:
	}
}

// Close stops the feed. The program stops waiting for samples once the
// buffered ones are drained.
func (f *Feed) Close() {
	f.once.Do(func() { close(f.done) })
}

// SampleMsg delivers one touch sample to the model.
type SampleMsg struct {
	Sample gesture.Sample
}

type feedDoneMsg struct{}

func waitForSample(f *Feed) tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-f.samples:
			return SampleMsg{Sample: s}
		case <-f.done:
		}
		select {
		case s := <-f.samples:
			return SampleMsg{Sample: s}
		default:
			return feedDoneMsg{}
		}
	}
}
