package book

import (
	"fmt"
	"log"
	"math/rand/v2"
	"runtime"
	"runtime/debug"
	"testing"
)

var benchOrders = make([]Order, 0, 200000)

func init() {
	// disable garbage collection for benchmark tests
	debug.SetGCPercent(-1)

	log.Println("Generating random order data for benchmark tests")
	for i := 0; i < 200000; i++ {
		randomPrice := rand.Float64() * 150000.0
		randomQty := uint64(rand.Float64()*100.0) + 1

		side := Buy
		if rand.Int32()%2 == 0 {
			side = Sell
		}

		benchOrders = append(benchOrders, Order{
			ID:       uint64(i) + 1,
			Side:     side,
			Quantity: randomQty,
			Price:    randomPrice,
		})
	}

	// Run garbage collection after generating orders to clean up memory
	runtime.GC()
}

func BenchmarkAddCancel(benchmark *testing.B) {
	b := NewBook("BTC-USDT")
	for i := 0; i < benchmark.N; i++ {
		o := benchOrders[i%len(benchOrders)]
		id := o.ID + uint64(i)*uint64(len(benchOrders))
		if err := b.Add(id, o.Side, o.Quantity, o.Price); err != nil {
			benchmark.Fatalf("unexpected error: %v", err)
		}
		if err := b.Cancel(id); err != nil {
			benchmark.Fatalf("unexpected error: %v", err)
		}
	}
	runtime.GC()
}

func BenchmarkVWAPAtScale(benchmark *testing.B) {
	b := NewBook("BTC-USDT")
	for i, o := range benchOrders {
		if err := b.Add(o.ID, o.Side, o.Quantity, o.Price); err != nil {
			benchmark.Fatalf("unexpected error at %d: %v", i, err)
		}
	}

	benchmark.ResetTimer()
	var vwapCount int
	for i := 0; i < benchmark.N; i++ {
		v := b.VWAP(1000)
		if v.BuyValid {
			vwapCount++
		}
	}
	fmt.Printf("BenchmarkVWAPAtScale: %d valid buy-side results\n", vwapCount)
	runtime.GC()
}
