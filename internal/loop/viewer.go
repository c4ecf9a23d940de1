package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/rigid2d/internal/draw"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/input"
)

// World is the part of a simulation a viewer talks to.
type World interface {
	Snapshot() *Snapshot
	Submit(cmd Command) bool
}

var _ World = (*Simulation)(nil)

// ViewerOptions configures a Viewer.
type ViewerOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *zap.Logger
}

// Viewer renders snapshots of a World to a terminal and forwards key presses
// as commands.
type Viewer struct {
	world        World
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	stream       *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *zap.Logger

	keys        input.Keys
	showBoxes   bool
	showVectors bool
	lastInput   time.Time
	running     bool
}

// NewViewer creates a viewer reading keys from r and drawing to w.
func NewViewer(world World, r *bufio.Reader, w io.Writer, opts ViewerOptions) *Viewer {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	snap := world.Snapshot()
	cols, rows, _ := termSizeFunc()
	width, height, offCol, offRow := draw.Fit(cols, rows, MaxTermWidth, MaxTermHeight)
	canvas := draw.NewCanvas(width, height, snap.World.Width, snap.World.Height)
	canvas.SetOffset(offCol, offRow)

	return &Viewer{
		world:        world,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offCol, offRow),
		writer:       w,
		stream:       input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		lastInput:    time.Now(),
		running:      true,
	}
}

// Run draws frames until the user quits, ctx is cancelled, or the viewer has
// been idle for InactivityDisconnect.
func (v *Viewer) Run(ctx context.Context) error {
	draw.HideCursor(v.writer)
	defer draw.ShowCursor(v.writer)
	draw.ClearScreen(v.writer)

	for v.running {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			v.running = false
			continue
		default:
		}

		v.processInput()
		v.updateScreen()
		if err := v.drawFrame(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < FrameTime {
			time.Sleep(FrameTime - elapsed)
		}
	}

	draw.ClearScreen(v.writer)
	return nil
}

func (v *Viewer) processInput() {
	v.keys = v.stream.Read()
	if v.keys.Any() {
		v.lastInput = time.Now()
	} else if time.Since(v.lastInput) > InactivityDisconnect {
		v.logger.Info("viewer idle, disconnecting")
		v.running = false
		return
	}
	v.handleKeys()
}

func (v *Viewer) handleKeys() {
	if v.keys.Quit {
		v.running = false
		return
	}
	if v.keys.Pause {
		v.world.Submit(CommandTogglePause)
	}
	if v.keys.Step {
		v.world.Submit(CommandStep)
	}
	if v.keys.Spawn {
		v.world.Submit(CommandSpawn)
	}
	if v.keys.Boxes {
		v.showBoxes = !v.showBoxes
	}
	if v.keys.Vector {
		v.showVectors = !v.showVectors
	}
}

// updateScreen follows terminal resizes.
func (v *Viewer) updateScreen() {
	cols, rows, err := v.termSizeFunc()
	if err != nil {
		return
	}
	width, height, offCol, offRow := draw.Fit(cols, rows, MaxTermWidth, MaxTermHeight)
	v.canvas.Resize(width, height)
	v.canvas.SetOffset(offCol, offRow)
	v.chunkWriter.SetOffset(offCol, offRow)
}

func (v *Viewer) drawFrame() error {
	snap := v.world.Snapshot()

	v.chunkWriter.WriteString("\033[2J")
	v.canvas.Clear()
	v.drawWorld(snap)

	if err := v.canvas.Render(v.chunkWriter); err != nil {
		return err
	}
	if err := v.canvas.RenderBorder(v.chunkWriter); err != nil {
		return err
	}
	v.drawHUD(snap)
	return v.chunkWriter.Flush()
}

func (v *Viewer) drawWorld(snap *Snapshot) {
	for _, b := range snap.Bodies {
		if b.Radius > 0 {
			v.canvas.Circle(b.Position, b.Radius)
			v.canvas.Line(b.Position, b.Position.Add(geom.V(b.Radius, 0).Rotate(b.Orientation)))
		} else {
			v.canvas.Polygon(b.Vertices)
		}

		if v.showBoxes {
			r := b.Bounds
			v.canvas.Polygon([]geom.Vector2{
				{X: r.MinX, Y: r.MinY}, {X: r.MaxX, Y: r.MinY},
				{X: r.MaxX, Y: r.MaxY}, {X: r.MinX, Y: r.MaxY},
			})
		}
		if v.showVectors {
			v.canvas.Line(b.Position, b.Position.Add(b.Velocity.Scale(velocityMarkerScale)))
		}
	}

	for _, c := range snap.Contacts {
		v.canvas.Line(c.Point, c.Point.Add(c.Normal.Scale(contactMarkerLength)))
	}
}

func (v *Viewer) drawHUD(snap *Snapshot) {
	colliding := 0
	for _, b := range snap.Bodies {
		if b.Colliding {
			colliding++
		}
	}

	status := fmt.Sprintf(" tick %d  bodies %d  colliding %d  contacts %d ",
		snap.Tick, len(snap.Bodies), colliding, len(snap.Contacts))
	if snap.Paused {
		status += " PAUSED "
	}
	v.chunkWriter.WriteAt(1, 1, status)
	v.chunkWriter.WriteAt(1, v.canvas.Rows(), " q quit  space pause  s step  n spawn  b boxes  v vectors ")
}
