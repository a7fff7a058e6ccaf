// swarmview is a terminal viewer for the simulator's snapshot stream.
// It is pure presentation: it holds no coordination logic and only maps
// positions, statuses and telemetry onto the screen.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/swarmworks/alphaswarm/ipc"
)

var statusStyles = map[string]tcell.Style{
	"free":      tcell.StyleDefault.Foreground(tcell.ColorWhite),
	"builder":   tcell.StyleDefault.Foreground(tcell.ColorBlue),
	"beacon":    tcell.StyleDefault.Foreground(tcell.ColorAqua),
	"rescue":    tcell.StyleDefault.Foreground(tcell.ColorYellow),
	"returning": tcell.StyleDefault.Foreground(tcell.ColorGreen),
	"weak":      tcell.StyleDefault.Foreground(tcell.ColorGray),
	"dead":      tcell.StyleDefault.Foreground(tcell.ColorRed),
	"stationed": tcell.StyleDefault.Foreground(tcell.ColorLime),
}

var statusRunes = map[string]rune{
	"free":      'o',
	"builder":   'B',
	"beacon":    '^',
	"rescue":    'R',
	"returning": '<',
	"weak":      'w',
	"dead":      'x',
	"stationed": '#',
}

func main() {
	socket := flag.String("socket", "/tmp/alphaswarm.sock", "simulator socket")
	bound := flag.Float64("bound", 60, "world half-extent mapped onto the screen")
	flag.Parse()

	conn, err := net.Dial("unix", *socket)
	if err != nil {
		slog.Error("failed to connect to simulator", "socket", *socket, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	hello, err := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Client: "swarmview"})
	if err != nil {
		slog.Error("failed to build hello", "error", err)
		os.Exit(1)
	}
	if err := ipc.WriteEnvelope(conn, hello); err != nil {
		slog.Error("handshake failed", "error", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		os.Exit(1)
	}
	defer screen.Fini()

	snapshots := make(chan ipc.SnapshotMessage, 1)
	done := make(chan int, 1)
	go readLoop(conn, snapshots, done)

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
					close(quit)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	for {
		select {
		case <-quit:
			return
		case ticks := <-done:
			drawBanner(screen, fmt.Sprintf(" construction complete in %d ticks, q to exit ", ticks))
			screen.Show()
		case snap := <-snapshots:
			draw(screen, snap, *bound)
		}
	}
}

// readLoop decodes envelopes off the socket, keeping only the newest
// snapshot so a slow terminal never falls behind the simulation.
func readLoop(conn net.Conn, snapshots chan ipc.SnapshotMessage, done chan<- int) {
	for {
		env, err := ipc.ReadEnvelope(conn)
		if err != nil {
			return
		}
		switch env.Type {
		case ipc.TypeSnapshot:
			var snap ipc.SnapshotMessage
			if err := json.Unmarshal(env.Data, &snap); err != nil {
				continue
			}
			select {
			case snapshots <- snap:
			default:
				// Drop the stale frame waiting in the channel.
				select {
				case <-snapshots:
				default:
				}
				snapshots <- snap
			}
		case ipc.TypeDone:
			var msg ipc.DoneMessage
			if err := json.Unmarshal(env.Data, &msg); err == nil {
				done <- msg.Ticks
			}
			return
		}
	}
}

// draw projects the x/y plane of the world onto the terminal grid.
func draw(screen tcell.Screen, snap ipc.SnapshotMessage, bound float64) {
	screen.Clear()
	w, h := screen.Size()
	if h < 3 || w < 10 {
		screen.Show()
		return
	}
	gridH := h - 2 // bottom rows reserved for telemetry

	project := func(x, y float64) (int, int) {
		col := int((x + bound) / (2 * bound) * float64(w-1))
		// Screen rows grow downward; world y grows upward.
		row := int((bound - y) / (2 * bound) * float64(gridH-1))
		return col, row
	}

	for _, t := range snap.Targets {
		col, row := project(t.Pos.X, t.Pos.Y)
		if col < 0 || col >= w || row < 0 || row >= gridH {
			continue
		}
		switch {
		case t.Built:
			screen.SetContent(col, row, '*', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
		case t.Locked:
			screen.SetContent(col, row, '+', nil, tcell.StyleDefault.Foreground(tcell.ColorOrange))
		default:
			screen.SetContent(col, row, '.', nil, tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray))
		}
	}

	for _, a := range snap.Agents {
		col, row := project(a.Pos.X, a.Pos.Y)
		if col < 0 || col >= w || row < 0 || row >= gridH {
			continue
		}
		r, ok := statusRunes[a.Status]
		if !ok {
			r = '?'
		}
		style, ok := statusStyles[a.Status]
		if !ok {
			style = tcell.StyleDefault
		}
		screen.SetContent(col, row, r, nil, style)
	}

	acol, arow := project(snap.AlphaPos.X, snap.AlphaPos.Y)
	if acol >= 0 && acol < w && arow >= 0 && arow < gridH {
		screen.SetContent(acol, arow, '@', nil, tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true))
	}

	tm := snap.Telemetry
	status := fmt.Sprintf(" tick %d | %.1f%% built (%d/%d) | strategy %s | radius %.1f",
		tm.Tick, tm.Completion*100, tm.BuiltTargets, tm.TotalTargets, tm.Strategy, tm.BondRadius)
	counts := fmt.Sprintf(" free %d | builders %d | beacons %d | weak %d | dead %d | stationed %d | avg fuel %.1f",
		tm.Free, tm.Builders, tm.Beacons, tm.Weak, tm.Dead, tm.Stationed, tm.AvgFuel)
	drawText(screen, 0, h-2, status, tcell.StyleDefault.Reverse(true))
	drawText(screen, 0, h-1, counts, tcell.StyleDefault.Reverse(true))

	screen.Show()
}

func drawBanner(screen tcell.Screen, text string) {
	w, h := screen.Size()
	drawText(screen, max(0, (w-len(text))/2), h/2, text, tcell.StyleDefault.Reverse(true).Bold(true))
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	w, _ := screen.Size()
	for i, r := range text {
		if x+i >= w {
			break
		}
		screen.SetContent(x+i, y, r, nil, style)
	}
}
