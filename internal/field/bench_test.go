package field

import (
	"math/rand"
	"testing"
)

func benchmarkTick(b *testing.B, n int) {
	cfg := DefaultConfig()
	cfg.Count = n
	f, err := New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Tick()
	}
}

func BenchmarkTick150(b *testing.B) { benchmarkTick(b, 150) }
func BenchmarkTick500(b *testing.B) { benchmarkTick(b, 500) }

func benchmarkTickParallel(b *testing.B, n, workers int) {
	cfg := DefaultConfig()
	cfg.Count = n
	cfg.Workers = workers
	f, err := New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Tick()
	}
}

func BenchmarkTick500Workers4(b *testing.B)  { benchmarkTickParallel(b, 500, 4) }
func BenchmarkTick2000Workers4(b *testing.B) { benchmarkTickParallel(b, 2000, 4) }
