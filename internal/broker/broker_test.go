package broker_test

import (
	"bookforge/internal/broker"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker(t *testing.T) {
	type testCase struct {
		name     string
		testFunc func(b *broker.Broker)
	}
	tests := []testCase{
		{
			name: "subscriber receives events",
			testFunc: func(b *broker.Broker) {
				runID := "run-1"
				channel := make(chan broker.Event)
				b.Publish(runID, channel)
				go func() {
					channel <- broker.Event{Stage: broker.StageResearch, Message: "agents running"} //nolint:exhaustruct // this is better for readability
					close(channel)
					b.Unpublish(runID)
				}()
				events := <-b.Subscribe(runID)
				event := <-events
				require.Equal(t, broker.StageResearch, event.Stage)
				require.Equal(t, "agents running", event.Message)
				_, ok := <-events
				require.False(t, ok, "channel not closed after producer finished")
			},
		},
		{
			name: "unknown run closes immediately",
			testFunc: func(b *broker.Broker) {
				events, ok := <-b.Subscribe("never-published")
				require.Nil(t, events)
				require.False(t, ok)
			},
		},
		{
			name: "subsequent subscribers block until run finishes",
			testFunc: func(b *broker.Broker) {
				runID := "run-1"
				channel := make(chan broker.Event)
				b.Publish(runID, channel)
				finished := atomic.Bool{}

				events := <-b.Subscribe(runID)

				lateDone := make(chan struct{})
				go func() {
					defer close(lateDone)
					late, ok := <-b.Subscribe(runID)
					assert.Nil(t, late)
					assert.False(t, ok)
					assert.True(t, finished.Load(), "late subscriber unblocked before run finished")
				}()

				go func() {
					channel <- broker.Event{Stage: broker.StageWriting, Message: "Writing Chapter 1..."} //nolint:exhaustruct // this is better for readability
					close(channel)
					finished.Store(true)
					b.Unpublish(runID)
				}()
				event := <-events
				require.Equal(t, "Writing Chapter 1...", event.Message)

				// Unpublish must release the queued subscriber, not leave it
				// blocked.
				<-lateDone

				last, ok := <-b.Subscribe(runID)
				require.Nil(t, last)
				require.False(t, ok)
				require.True(t, finished.Load())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := broker.New()
			go b.Start()
			t.Cleanup(b.Stop)
			tt.testFunc(b)
		})
	}
}
