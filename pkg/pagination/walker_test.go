package pagination

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Sternrassler/artic-client/internal/testutil"
	"github.com/Sternrassler/artic-client/pkg/artwork"
)

func TestNewWalker_Defaults(t *testing.T) {
	w := NewWalker(testutil.NewStubFetcher(1, 1), Config{Timeout: -1, MaxPages: -5})

	if w.config.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", w.config.Timeout)
	}
	if w.config.MaxPages != 0 {
		t.Errorf("MaxPages = %d, want 0", w.config.MaxPages)
	}
}

func TestWalk_AllPagesInOrder(t *testing.T) {
	stub := testutil.NewStubFetcher(30, 12)
	w := NewWalker(stub, DefaultConfig())

	var seen []int
	err := w.Walk(context.Background(), func(page *artwork.Page) bool {
		seen = append(seen, page.Number)
		return true
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []int{1, 2, 3}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("pages seen = %v, want %v", seen, want)
	}
	if !reflect.DeepEqual(stub.Calls(), want) {
		t.Errorf("pages fetched = %v, want %v", stub.Calls(), want)
	}
}

func TestWalk_StopByCaller(t *testing.T) {
	stub := testutil.NewStubFetcher(100, 12)
	w := NewWalker(stub, DefaultConfig())

	err := w.Walk(context.Background(), func(page *artwork.Page) bool {
		return page.Number < 2
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	if got := stub.Calls(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("pages fetched = %v, want [1 2]", got)
	}
}

func TestWalk_EmptyCatalogue(t *testing.T) {
	stub := testutil.NewStubFetcher(0, 12)
	w := NewWalker(stub, DefaultConfig())

	calls := 0
	err := w.Walk(context.Background(), func(page *artwork.Page) bool {
		calls++
		return true
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("callback calls = %d, want 1", calls)
	}
}

func TestWalk_MaxPages(t *testing.T) {
	stub := testutil.NewStubFetcher(100, 12)
	w := NewWalker(stub, Config{MaxPages: 3})

	err := w.Walk(context.Background(), func(page *artwork.Page) bool { return true })
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got := len(stub.Calls()); got != 3 {
		t.Errorf("pages fetched = %d, want 3", got)
	}
}

func TestWalk_ErrorStopsWalk(t *testing.T) {
	stub := testutil.NewStubFetcher(100, 12)
	boom := errors.New("boom")
	stub.Errors[2] = boom
	w := NewWalker(stub, DefaultConfig())

	var seen []int
	err := w.Walk(context.Background(), func(page *artwork.Page) bool {
		seen = append(seen, page.Number)
		return true
	})

	if !errors.Is(err, boom) {
		t.Fatalf("Walk() error = %v, want %v", err, boom)
	}
	if !reflect.DeepEqual(seen, []int{1}) {
		t.Errorf("pages delivered = %v, want [1]", seen)
	}
	if got := stub.Calls(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("pages fetched = %v, want [1 2]", got)
	}
}

func TestWalk_ContextCancelledBeforeStart(t *testing.T) {
	stub := testutil.NewStubFetcher(100, 12)
	w := NewWalker(stub, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Walk(ctx, func(page *artwork.Page) bool { return true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Walk() error = %v, want context.Canceled", err)
	}
	if len(stub.Calls()) != 0 {
		t.Errorf("pages fetched = %v, want none", stub.Calls())
	}
}

func TestWalk_ContextCancelledBetweenPages(t *testing.T) {
	stub := testutil.NewStubFetcher(100, 12)
	w := NewWalker(stub, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := w.Walk(ctx, func(page *artwork.Page) bool {
		if page.Number == 2 {
			cancel()
		}
		return true
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Walk() error = %v, want context.Canceled", err)
	}
	if got := stub.Calls(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("pages fetched = %v, want [1 2]", got)
	}
}

type slowFetcher struct{}

func (slowFetcher) FetchPage(ctx context.Context, page int) (*artwork.Page, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWalk_PerPageTimeout(t *testing.T) {
	w := NewWalker(slowFetcher{}, Config{Timeout: 20 * time.Millisecond})

	err := w.Walk(context.Background(), func(page *artwork.Page) bool { return true })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Walk() error = %v, want context.DeadlineExceeded", err)
	}
}
