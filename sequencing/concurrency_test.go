package sequencing

import (
	"sync"
	"testing"
	"time"

	"github.com/ducksouplab/motion/events"
	"github.com/ducksouplab/motion/scheduler"
)

func TestConcurrentControls(t *testing.T) {
	pool := scheduler.NewPool(4)
	defer pool.Shutdown()

	const goroutines, iterations = 8, 200

	t.Run("Animation", func(t *testing.T) {
		a, err := Float64.Use(AnimationConfig[float64]{
			End:       100,
			Duration:  20 * time.Millisecond,
			Looping:   true,
			Sensitive: true,
			Scheduler: pool,
			Bus:       events.NewBus(),
		})
		if err != nil {
			t.Fatal(err)
		}
		frames := 0
		var framesMu sync.Mutex
		a.OnFrameEnd(func() {
			framesMu.Lock()
			frames++
			framesMu.Unlock()
		})
		a.Play()

		var wg sync.WaitGroup
		outOfRange := make(chan float64, goroutines*iterations)
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < iterations; i++ {
					switch (g + i) % 7 {
					case 0:
						a.Pause()
					case 1:
						a.Resume()
					case 2:
						a.NegateSpeed()
					case 3:
						a.Replay()
					case 4:
						a.SetLooping(i%2 == 0)
					case 5:
						a.PauseOrResume()
					case 6:
						a.Play()
					}
					if p := a.Progress(); p < 0 || p > 1 {
						outOfRange <- p
					}
					if i%20 == 0 {
						time.Sleep(time.Millisecond)
					}
				}
			}(g)
		}
		wg.Wait()
		close(outOfRange)
		for p := range outOfRange {
			t.Errorf("progress %v out of [0,1]", p)
		}

		a.Terminate()
		// let in-flight ticks drain
		time.Sleep(10 * time.Millisecond)
		if a.IsPlaying() || a.IsPaused() {
			t.Error("terminated animation should be neither playing nor paused")
		}
		if p := a.Progress(); p < 0 || p > 1 {
			t.Errorf("progress %v out of [0,1]", p)
		}
		framesMu.Lock()
		defer framesMu.Unlock()
		if frames == 0 {
			t.Error("pool should have ticked the animation")
		}
	})

	t.Run("Interpolation", func(t *testing.T) {
		i, err := NewInterpolation(InterpolationConfig[float64]{
			Ratio:     0.2,
			Blend:     LinearBlend,
			Scheduler: pool,
			Bus:       events.NewBus(),
		})
		if err != nil {
			t.Fatal(err)
		}

		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for n := 0; n < iterations; n++ {
					switch (g + n) % 5 {
					case 0:
						i.SetTarget(float64(g * 10))
					case 1:
						i.Pause()
					case 2:
						i.Resume()
					case 3:
						i.SetRatio(0.5)
					case 4:
						i.PauseOrResume()
					}
					if v := i.Value(); v < 0 || v > 70 {
						t.Errorf("value %v escaped the targets range", v)
					}
				}
			}(g)
		}
		wg.Wait()

		i.Terminate()
		time.Sleep(10 * time.Millisecond)
		if i.IsPlaying() || i.IsPaused() {
			t.Error("terminated interpolation should be neither playing nor paused")
		}
	})
}
