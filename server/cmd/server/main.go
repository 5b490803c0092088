package main

import (
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/server/core"
	"github.com/automoto/netsmooth/shared/protocol"
)

func main() {
	sc := cfg.Server
	flag.UintVar(&sc.Port, "port", sc.Port, "Server port")
	flag.IntVar(&sc.TickRate, "tickrate", sc.TickRate, "Simulation steps per second")
	flag.IntVar(&sc.SnapshotRate, "snaprate", sc.SnapshotRate, "Snapshots per second")
	flag.IntVar(&sc.Agents, "agents", sc.Agents, "Number of simulated agents")
	flag.Float64Var(&sc.LossRate, "loss", sc.LossRate, "Probability a snapshot is dropped")
	flag.Float64Var(&sc.OutageEvery, "outage-every", sc.OutageEvery, "Seconds between outages (0 disables)")
	flag.Float64Var(&sc.OutageLength, "outage-length", sc.OutageLength, "Seconds an outage lasts")
	flag.Uint64Var(&sc.Seed, "seed", sc.Seed, "Random seed")
	version := flag.String("version", "", "Required viewer protocol version (empty = accept any)")
	record := flag.String("record", "", "Write every sent snapshot to this trace file")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	var trace io.Writer
	var traceFile *os.File
	if *record != "" {
		f, err := os.Create(*record)
		if err != nil {
			log.Fatalf("Failed to create trace file: %v", err)
		}
		traceFile = f
		trace = f
	}

	server, err := core.NewServer(sc, *version, trace)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		if traceFile != nil {
			_ = traceFile.Close()
		}
		os.Exit(0)
	}()

	log.Printf("Starting netsmooth server on port %d (tick %d/s, snapshots %d/s, %d agents, loss %.0f%%)",
		sc.Port, sc.TickRate, sc.SnapshotRate, sc.Agents, sc.LossRate*100)
	if err := server.Start(sc.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
