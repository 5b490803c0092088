package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameLoopStopWithoutRun(t *testing.T) {
	s, _ := newTestServer(t, 0, nil)
	loop := NewGameLoop(s, 30)

	start := time.Now()
	loop.Stop()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.False(t, loop.Running())
}

func TestGameLoopRunStop(t *testing.T) {
	s, _ := newTestServer(t, 0, nil)
	loop := NewGameLoop(s, 60)

	go loop.Run()
	require.Eventually(t, loop.Running, time.Second, 5*time.Millisecond)

	loop.Stop()
	assert.False(t, loop.Running())
	select {
	case <-loop.done:
	default:
		t.Fatal("Run did not return after Stop")
	}
}
