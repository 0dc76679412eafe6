package sequence

import (
	"sync"
	"testing"
)

func TestSequencer(t *testing.T) {
	s := New(10)

	if got := s.Current(); got != 10 {
		t.Fatalf("expected current 10, got %d", got)
	}
	if got := s.Next(); got != 11 {
		t.Fatalf("expected next 11, got %d", got)
	}
	s.Reset(100)
	if got := s.Next(); got != 101 {
		t.Fatalf("expected 101 after reset, got %d", got)
	}
}

func TestSequencerConcurrent(t *testing.T) {
	s := New(0)

	const workers, perWorker = 8, 1000
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				s.Next()
			}
		}()
	}
	wg.Wait()

	if got := s.Current(); got != workers*perWorker {
		t.Fatalf("expected %d, got %d", workers*perWorker, got)
	}
}
