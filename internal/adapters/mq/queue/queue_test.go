package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	job := NewJob("a.rcg", "a.out.rcg")
	if job.ID == "" {
		t.Fatal("expected a job id")
	}
	if !q.Enqueue(ctx, job) {
		t.Error("expected enqueue to succeed")
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	got := <-q.Dequeue(ctx)
	if got != job {
		t.Errorf("expected %+v, got %+v", job, got)
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, NewJob("1", "")) || !q.Enqueue(ctx, NewJob("2", "")) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.Enqueue(ctx, NewJob("3", "")) {
		t.Error("expected enqueue to fail when full")
	}

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if err := q.Put(short, NewJob("3", "")); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error from blocked put, got %v", err)
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_PutWaitsForRoom(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(1))
	ctx := context.Background()
	const total = 50

	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for j := range q.Dequeue(ctx) {
			got = append(got, j.Input)
		}
	}()

	for i := range total {
		if err := q.Put(ctx, Job{ID: fmt.Sprint(i), Input: fmt.Sprint(i)}); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}
	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not finish")
	}
	if len(got) != total {
		t.Fatalf("expected %d jobs, got %d", total, len(got))
	}
	for i, in := range got {
		if in != fmt.Sprint(i) {
			t.Errorf("job %d out of order: %s", i, in)
		}
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(16))
	ctx := context.Background()
	const producers, perProducer = 8, 50

	var consumed sync.Map
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range q.Dequeue(ctx) {
				consumed.Store(j.ID, true)
			}
		}()
	}

	var pw sync.WaitGroup
	for p := range producers {
		pw.Add(1)
		go func() {
			defer pw.Done()
			for i := range perProducer {
				if err := q.Put(ctx, Job{ID: fmt.Sprintf("%d_%d", p, i)}); err != nil {
					t.Errorf("put: %v", err)
				}
			}
		}()
	}
	pw.Wait()
	_ = q.Close()
	wg.Wait()

	n := 0
	consumed.Range(func(_, _ any) bool {
		n++
		return true
	})
	if n != producers*perProducer {
		t.Errorf("expected %d jobs consumed, got %d", producers*perProducer, n)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if !q.Enqueue(ctx, NewJob("a", "")) || !q.Enqueue(ctx, NewJob("b", "")) {
		t.Fatal("expected enqueue to succeed")
	}
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if q.Enqueue(ctx, NewJob("c", "")) {
		t.Error("expected enqueue to fail after closing")
	}
	if err := q.Put(ctx, NewJob("c", "")); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	// Jobs queued before Close are still delivered.
	var inputs []string
	timeout := time.After(time.Second)
	ch := q.Dequeue(ctx)
	for {
		select {
		case j, ok := <-ch:
			if !ok {
				if len(inputs) != 2 {
					t.Errorf("expected 2 drained jobs, got %v", inputs)
				}
				if err := q.Close(); err != nil {
					t.Errorf("expected second close to succeed, got error: %v", err)
				}
				return
			}
			inputs = append(inputs, j.Input)
		case <-timeout:
			t.Fatal("expected dequeue channel to close")
		}
	}
}
