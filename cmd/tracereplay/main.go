package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/automoto/netsmooth/config"
	"github.com/automoto/netsmooth/replay"
	"github.com/automoto/netsmooth/smoothing"
	"github.com/automoto/netsmooth/wire"
	"github.com/dustin/go-humanize"
)

func main() {
	s := config.Smoothing
	path := flag.String("trace", "", "Trace file written by the server's -record flag")
	flag.BoolVar(&s.PreciseStop, "precise", s.PreciseStop, "Suppress small corrections of stopped agents")
	flag.IntVar(&s.CorrectionMultiplier, "correction", s.CorrectionMultiplier, "Correction multiplier (>= 1)")
	flag.IntVar(&s.RotationMultiplier, "rotation", s.RotationMultiplier, "Rotation multiplier (>= 1)")
	dt := flag.Float64("dt", 1.0/60, "Fixed tick in seconds")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open trace: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		log.Fatalf("Failed to stat trace: %v", err)
	}

	rep, err := replay.Run(wire.NewTraceReader(f), s, *dt)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	fmt.Printf("%s: %s, %s frames (%s skipped), %.1fs, %s ticks\n",
		*path, humanize.Bytes(uint64(info.Size())), humanize.Comma(int64(rep.Frames)),
		humanize.Comma(int64(rep.Skipped)), rep.Duration, humanize.Comma(int64(rep.Ticks)))
	fmt.Printf("precise stop %t, correction x%d, rotation x%d\n\n",
		s.PreciseStop, s.CorrectionMultiplier, s.RotationMultiplier)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "agent\tapplied\tdropped\tteleports\tsnaps\tsuppressed\tjumps\tfresh\textrap\tfrozen\tmean err\tmax err\t")
	for _, a := range rep.Agents {
		st := a.Stats
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			a.ID,
			humanize.Comma(int64(st.Applied)),
			humanize.Comma(int64(st.Discarded)),
			st.Teleports,
			st.Snaps,
			humanize.Comma(int64(st.Suppressed)),
			st.JumpsStarted,
			percent(st.Ticks[smoothing.Fresh], rep.Ticks),
			percent(st.Ticks[smoothing.ExtrapolatingOnly], rep.Ticks),
			percent(st.Ticks[smoothing.Frozen], rep.Ticks),
			humanize.FtoaWithDigits(a.MeanError, 3),
			humanize.FtoaWithDigits(a.MaxError, 3),
		)
	}
	_ = w.Flush()
}

func percent(n, total int) string {
	if total == 0 {
		return "-"
	}
	return humanize.FtoaWithDigits(100*float64(n)/float64(total), 1) + "%"
}
