// Package broker hands a per-run progress channel from the pipeline goroutine
// to its first consumer. Later consumers for the same run block until the
// producer finishes, then resolve from persisted state instead.
package broker

import "bookforge/internal/models"

// Stage identifies which pipeline phase emitted an event.
type Stage string

const (
	StageResearch Stage = "research"
	StageWriting  Stage = "writing"
	StagePodcast  Stage = "podcast"
	StageImages   Stage = "images"
)

// Event is one progress update from a generation run. AgentStates is only set
// for research-stage events.
type Event struct {
	Stage       Stage
	Message     string
	AgentStates []models.AgentState
}

type publication struct {
	runID   string
	channel chan Event
}

type subscription struct {
	runID   string
	channel chan chan Event
}

// Broker routes each run's event channel to the first subscriber for that run.
type Broker struct {
	stopChannel      chan struct{}
	publishChannel   chan publication
	unpublishChannel chan string
	subscribeChannel chan subscription
}

// New creates a Broker. Call Start in a goroutine and Stop when done.
func New() *Broker {
	return &Broker{
		stopChannel:      make(chan struct{}),
		publishChannel:   make(chan publication),
		unpublishChannel: make(chan string),
		subscribeChannel: make(chan subscription),
	}
}

// Start listens for publish, unpublish, and subscribe events. It blocks until
// Stop is called, so run it in a goroutine.
func (b *Broker) Start() {
	published := map[string]chan Event{}
	subscribers := map[string][]chan chan Event{}
	for {
		select {
		case <-b.stopChannel:
			return

		case sub := <-b.subscribeChannel:
			c := published[sub.runID]
			if c == nil {
				// Signal that the run is finished or has not started.
				close(sub.channel)
				break
			}
			existing := subscribers[sub.runID]
			if existing == nil {
				// First subscriber gets the live channel.
				subscribers[sub.runID] = []chan chan Event{sub.channel}
				sub.channel <- c
			} else {
				// The rest wait until the run finishes.
				subscribers[sub.runID] = append(existing, sub.channel)
			}

		case pub := <-b.publishChannel:
			published[pub.runID] = pub.channel

		case runID := <-b.unpublishChannel:
			delete(published, runID)
			// Waiting subscribers unblock with a closed channel, same as
			// subscribing to a finished run.
			for _, waiting := range subscribers[runID] {
				close(waiting)
			}
			delete(subscribers, runID)
		}
	}
}

// Stop shuts down the broker goroutine.
func (b *Broker) Stop() {
	close(b.stopChannel)
}

// Subscribe returns a channel that yields the run's event channel. If the run
// is not publishing, the returned channel is closed immediately. If another
// subscriber already holds the event channel, the returned channel closes once
// the run finishes.
func (b *Broker) Subscribe(runID string) chan chan Event {
	channel := make(chan chan Event, 1)
	b.subscribeChannel <- subscription{runID: runID, channel: channel}
	return channel
}

// Publish registers the run's event channel for handoff to its first
// subscriber.
func (b *Broker) Publish(runID string, channel chan Event) {
	b.publishChannel <- publication{runID: runID, channel: channel}
}

// Unpublish removes the run. Producers should use an unbuffered event channel
// so they block until a consumer attaches, with a timeout if consumers are
// unreliable.
func (b *Broker) Unpublish(runID string) {
	b.unpublishChannel <- runID
}
