package random

import (
	"testing"
	"time"
)

// TestNextMatchesReferenceStream pins the mix function to the published
// SplitMix64 reference outputs for seed 1234567.
func TestNextMatchesReferenceStream(t *testing.T) {
	want := []uint64{
		6457827717110365317,
		3203168211198807973,
		9817491932198370423,
		4593380528125082431,
		16408922859458223821,
	}
	src := New(1234567)
	for i, w := range want {
		if got := src.Next(); got != w {
			t.Fatalf("Next() #%d = %d, want %d", i, got, w)
		}
	}
	if src.Draws() != uint64(len(want)) {
		t.Fatalf("Draws() = %d, want %d", src.Draws(), len(want))
	}
}

func TestZeroSeedIsRemapped(t *testing.T) {
	zero := New(0)
	if zero.Seed() != ZeroSeed {
		t.Fatalf("Seed() = %#x, want %#x", zero.Seed(), ZeroSeed)
	}
	remapped := New(ZeroSeed)
	for i := 0; i < 8; i++ {
		a, b := zero.Next(), remapped.Next()
		if a != b {
			t.Fatalf("draw %d: zero seed = %d, remapped seed = %d", i, a, b)
		}
		if a == 0 {
			t.Fatalf("draw %d: unexpected zero value", i)
		}
	}
}

func TestNextBoundedStaysInRange(t *testing.T) {
	src := New(42)
	for i := 0; i < 1000; i++ {
		got := src.NextBounded(6)
		if got < 0 || got >= 6 {
			t.Fatalf("NextBounded(6) = %d, want [0, 6)", got)
		}
	}
}

func TestNextBoundedIsModuloOfNext(t *testing.T) {
	a := New(99)
	b := New(99)
	for i := 0; i < 20; i++ {
		raw := a.Next()
		if got, want := b.NextBounded(10), int(raw%10); got != want {
			t.Fatalf("draw %d: NextBounded(10) = %d, want %d", i, got, want)
		}
	}
}

func TestNextBoundedNonPositiveAdvances(t *testing.T) {
	src := New(7)
	if got := src.NextBounded(0); got != 0 {
		t.Fatalf("NextBounded(0) = %d, want 0", got)
	}
	if src.Draws() != 1 {
		t.Fatalf("Draws() = %d, want 1", src.Draws())
	}
}

func TestSkipReplaysDraws(t *testing.T) {
	a := New(12345)
	for i := 0; i < 5; i++ {
		a.Next()
	}
	b := New(12345)
	b.Skip(5)
	if a.Next() != b.Next() {
		t.Fatal("expected skipped stream to match advanced stream")
	}
}

func TestSkipMatchesDrawByDrawReplay(t *testing.T) {
	for n := uint64(0); n <= 64; n++ {
		stepped := New(987654321)
		for i := uint64(0); i < n; i++ {
			stepped.Next()
		}
		skipped := New(987654321)
		skipped.Skip(n)
		if skipped.Draws() != n {
			t.Fatalf("Skip(%d): Draws() = %d, want %d", n, skipped.Draws(), n)
		}
		for i := 0; i < 3; i++ {
			if got, want := skipped.Next(), stepped.Next(); got != want {
				t.Fatalf("Skip(%d) draw %d = %d, want %d", n, i, got, want)
			}
		}
	}
}

func TestSkipHugeCountReturnsImmediately(t *testing.T) {
	done := make(chan *Source, 1)
	go func() {
		src := New(1)
		src.Skip(1 << 62)
		src.Skip(1 << 62)
		done <- src
	}()

	var src *Source
	select {
	case src = <-done:
	case <-time.After(time.Second):
		t.Fatal("Skip(1<<62) did not return within 1s")
	}
	if src.Draws() != 1<<63 {
		t.Fatalf("Draws() = %d, want %d", src.Draws(), uint64(1<<63))
	}
	whole := New(1)
	whole.Skip(1 << 63)
	if got, want := src.Next(), whole.Next(); got != want {
		t.Fatalf("split skip draw = %d, want %d", got, want)
	}
}

func TestNewSeedIsNonZero(t *testing.T) {
	seed, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if seed == 0 {
		t.Fatal("expected non-zero seed")
	}
}
