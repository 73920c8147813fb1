package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/monegros/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  1000,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// sampleClubs covers every rule family plus the blank and non-ASCII paths.
var sampleClubs = []string{
	"C.C. Huesca", "Club Ciclista Oscense", "Peña Ciclista Example",
	"Penya Ciclista Manresa", "Agrupación Ciclista Montañera CC",
	"Agrupació Ciclista Vic", "A.D. Test A.C.", "S.D. Huesca T.T.",
	"Calatayud T.E", "E.C. Barbastro", "UCSC", "", "   ",
	"Unió Ciclista Sant Cugat", "Radsport Straße",
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	clubs       []ports.ClubNormalizer
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterClubNormalizer adds a club normalizer to be warmed up
func (wm *Manager) RegisterClubNormalizer(n ports.ClubNormalizer) {
	wm.clubs = append(wm.clubs, n)
}

// RegisterNormalizer adds a case folder to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components and returns
// the number of strings processed.
func (wm *Manager) WarmUp(ctx context.Context) int64 {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.clubs)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	processed := wm.run(ctx, func() int {
		for _, n := range wm.normalizers {
			for _, s := range sampleClubs {
				_ = n.Normalize(s)
			}
		}
		for _, c := range wm.clubs {
			for _, s := range sampleClubs {
				_ = c.Normalize(s)
			}
			_ = c.NormalizeValue(nil)
		}
		return (len(wm.normalizers) + len(wm.clubs)) * len(sampleClubs)
	})

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"processed", processed,
	)
	return processed
}

// run calls round Iterations times on each of Concurrency goroutines,
// stopping early when ctx is done.
func (wm *Manager) run(ctx context.Context, round func() int) int64 {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int64
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var n int64
			for j := 0; j < wm.config.Iterations && ctx.Err() == nil; j++ {
				n += int64(round())
			}

			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}

	wg.Wait()
	return total
}
