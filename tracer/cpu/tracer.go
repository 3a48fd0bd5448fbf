package cpu

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Selkomark/Blackhole-Simulation/log"
	"github.com/Selkomark/Blackhole-Simulation/physics"
	"github.com/Selkomark/Blackhole-Simulation/scene"
	"github.com/Selkomark/Blackhole-Simulation/tracer"
)

// Rows per task. Chunking rows reduces queue contention compared to per-row
// or per-pixel tasks without hurting load balance for this workload.
const rowsPerChunk = 8

// A unit of work: trace rows [startRow, endRow) of the current frame.
type rowChunk struct {
	startRow uint32
	endRow   uint32
	frame    *frameState
	done     *sync.WaitGroup
}

// Read-only per-frame state shared by all workers. The pixel buffer is the
// only written resource and chunks cover disjoint row ranges, so workers
// never touch the same byte.
type frameState struct {
	bh        physics.BlackHole
	rays      scene.RayGen
	time      float32
	colorMode int32
	intensity float32

	frameW uint32
	pixels []uint8
}

type cpuTracer struct {
	logger log.Logger
	id     string

	workers   int
	chunkChan chan rowChunk
	workerWg  sync.WaitGroup

	bh     physics.BlackHole
	frameW uint32
	frameH uint32
	pixels []uint8
	stats  *tracer.Stats
}

// NewTracer creates a CPU tracer backed by a persistent pool of worker
// goroutines. If numWorkers is <= 0 the pool is sized to the available
// hardware concurrency.
func NewTracer(bh physics.BlackHole, numWorkers int) tracer.Tracer {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	tr := &cpuTracer{
		logger:    log.New("cpu tracer"),
		id:        fmt.Sprintf("cpu (%d workers)", numWorkers),
		workers:   numWorkers,
		chunkChan: make(chan rowChunk, numWorkers),
		bh:        bh,
		stats:     &tracer.Stats{},
	}

	tr.workerWg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go tr.worker()
	}

	return tr
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Allocate the frame buffer.
func (tr *cpuTracer) Setup(frameW, frameH uint32) error {
	return tr.Resize(frameW, frameH)
}

// Reallocate the frame buffer. The new buffer is zeroed; nothing from the
// previous resolution survives.
func (tr *cpuTracer) Resize(frameW, frameH uint32) error {
	if frameW == 0 || frameH == 0 {
		return fmt.Errorf("cpu tracer: invalid frame dimensions %dx%d", frameW, frameH)
	}

	tr.frameW = frameW
	tr.frameH = frameH
	tr.pixels = make([]uint8, frameW*frameH*4)
	return nil
}

// Render one frame. Enqueues one task per row chunk and blocks on the
// completion barrier; when this returns every pixel of the buffer is valid.
func (tr *cpuTracer) Render(params tracer.FrameParams) error {
	if tr.pixels == nil {
		return fmt.Errorf("cpu tracer: Render called before Setup")
	}

	start := time.Now()

	frame := &frameState{
		bh:        tr.bh,
		rays:      params.Camera.Rays(tr.frameW, tr.frameH),
		time:      params.Time,
		colorMode: params.ColorMode,
		intensity: params.ColorIntensity,
		frameW:    tr.frameW,
		pixels:    tr.pixels,
	}

	var done sync.WaitGroup
	for y := uint32(0); y < tr.frameH; y += rowsPerChunk {
		endRow := y + rowsPerChunk
		if endRow > tr.frameH {
			endRow = tr.frameH
		}

		done.Add(1)
		tr.chunkChan <- rowChunk{startRow: y, endRow: endRow, frame: frame, done: &done}
	}
	done.Wait()

	tr.stats.FrameW = tr.frameW
	tr.stats.FrameH = tr.frameH
	tr.stats.RenderTime = time.Since(start)
	return nil
}

// Get a read-only view of the last rendered frame.
func (tr *cpuTracer) Pixels() []uint8 {
	return tr.pixels
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Shutdown the worker pool. Blocks until every worker has drained the queue
// and exited; safe to call once.
func (tr *cpuTracer) Close() {
	close(tr.chunkChan)
	tr.workerWg.Wait()
}

func (tr *cpuTracer) worker() {
	defer tr.workerWg.Done()

	for chunk := range tr.chunkChan {
		for y := chunk.startRow; y < chunk.endRow; y++ {
			chunk.frame.renderRow(y)
		}
		chunk.done.Done()
	}
}

func (fs *frameState) renderRow(y uint32) {
	origin := fs.rays.Origin()
	rowOffset := y * fs.frameW * 4

	for x := uint32(0); x < fs.frameW; x++ {
		dir := fs.rays.Dir(x, y)
		radiance := fs.bh.Trace(origin, dir, fs.time, fs.colorMode, fs.intensity)
		pixel := physics.ToneMap(radiance)

		offset := rowOffset + x*4
		fs.pixels[offset] = pixel[0]
		fs.pixels[offset+1] = pixel[1]
		fs.pixels[offset+2] = pixel[2]
		fs.pixels[offset+3] = pixel[3]
	}
}
