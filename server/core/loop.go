package core

import (
	"log"
	"sync/atomic"
	"time"
)

type GameLoop struct {
	server   *Server
	tickRate int
	running  atomic.Bool
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	g.running.Store(true)
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running.Store(false)
			log.Println("Game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Running reports whether Run is between its first and last tick.
func (g *GameLoop) Running() bool {
	return g.running.Load()
}

// Stop ends the loop and waits briefly for the current tick to finish.
// A loop that never ran returns at once.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	if !g.Running() {
		return
	}
	select {
	case <-g.done:
	case <-time.After(time.Second):
	}
}

func (g *GameLoop) tick() {
	g.server.ProcessCommands()
	g.server.Step(1 / float64(g.tickRate))
}
