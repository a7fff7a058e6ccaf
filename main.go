package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swarmworks/alphaswarm/alpha"
	"github.com/swarmworks/alphaswarm/ipc"
	"github.com/swarmworks/alphaswarm/model"
	"github.com/swarmworks/alphaswarm/shape"
	"github.com/swarmworks/alphaswarm/sim"
)

const banner = `
 █████╗ ██╗     ██████╗ ██╗  ██╗ █████╗ ███████╗██╗    ██╗ █████╗ ██████╗ ███╗   ███╗
██╔══██╗██║     ██╔══██╗██║  ██║██╔══██╗██╔════╝██║    ██║██╔══██╗██╔══██╗████╗ ████║
███████║██║     ██████╔╝███████║███████║███████╗██║ █╗ ██║███████║██████╔╝██╔████╔██║
██╔══██║██║     ██╔═══╝ ██╔══██║██╔══██║╚════██║██║███╗██║██╔══██║██╔══██╗██║╚██╔╝██║
██║  ██║███████╗██║     ██║  ██║██║  ██║███████║╚███╔███╔╝██║  ██║██║  ██║██║ ╚═╝ ██║
╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝ ╚══╝╚══╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝

Self-Organizing Swarm Construction`

func main() {
	var (
		letter   = flag.String("letter", "A", "uppercase letter to build")
		agents   = flag.Int("agents", 40, "swarm population size")
		seed     = flag.Int64("seed", 0, "RNG seed (0 = time-based)")
		socket   = flag.String("socket", "/tmp/alphaswarm.sock", "unix socket for viewers")
		rate     = flag.Int("rate", 60, "ticks per second (0 = unthrottled)")
		maxTicks = flag.Int("max-ticks", 0, "stop after N ticks even if unfinished (0 = run to completion)")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	runes := []rune(*letter)
	if len(runes) == 0 {
		runes = []rune{'A'}
	}
	points := shape.LetterPoints(runes[0])

	cfg := model.DefaultConfig()
	cfg.NumAgents = *agents
	st := model.NewState(cfg, points, rng)

	ctl, err := alpha.NewController(alpha.DefaultPolicy(), cfg)
	if err != nil {
		slog.Error("failed to compile regulation policy", "error", err)
		os.Exit(1)
	}
	runner := sim.NewRunner(st, ctl)

	slog.Info("starting construction",
		"letter", string(runes[0]),
		"targets", len(points),
		"agents", cfg.NumAgents,
		"seed", *seed,
	)

	// Unix sockets leave behind a file on unclean shutdown; remove it so
	// we can rebind.
	if err := os.RemoveAll(*socket); err != nil {
		slog.Error("failed to clean up socket", "path", *socket, "error", err)
		os.Exit(1)
	}
	listener, err := net.Listen("unix", *socket)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socket, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socket)

	publisher := ipc.NewPublisher()
	defer publisher.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go publisher.Attach(conn)
		}
	}()
	slog.Info("publishing snapshots", "socket", *socket)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var tick <-chan time.Time
	if *rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(*rate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for !runner.Done() {
		if *maxTicks > 0 && st.Tick >= *maxTicks {
			slog.Warn("tick limit reached", "tick", st.Tick, "completion", st.Completion())
			break
		}
		select {
		case <-sigCh:
			slog.Info("interrupted", "tick", st.Tick, "completion", st.Completion())
			return
		default:
		}
		if tick != nil {
			<-tick
		}

		runner.Step()
		publisher.Broadcast(ipc.TypeSnapshot, ipc.Snapshot(st, ctl.Pos))

		if st.Tick%600 == 0 {
			tm := st.Telemetry()
			slog.Info("progress",
				"tick", tm.Tick,
				"completion", fmt.Sprintf("%.1f%%", tm.Completion*100),
				"strategy", tm.Strategy,
				"builders", tm.Builders,
				"free", tm.Free,
				"stationed", tm.Stationed,
				"dead", tm.Dead,
				"avgFuel", fmt.Sprintf("%.1f", tm.AvgFuel),
			)
		}
	}

	if runner.Done() {
		publisher.Broadcast(ipc.TypeDone, ipc.DoneMessage{Ticks: st.Tick})
		slog.Info("construction complete", "letter", string(runes[0]), "ticks", st.Tick)
	}
}
