package batch

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressLog struct {
	mu    sync.Mutex
	calls [][2]int
}

func (p *progressLog) sink(current, max int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, [2]int{current, max})
}

func TestExecute_PreservesOrder(t *testing.T) {
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}
	cmd := Command[int, string]{
		Process: func(n int) string {
			if n%7 == 0 {
				time.Sleep(time.Millisecond)
			}
			return strconv.Itoa(n * 2)
		},
		Workers: 8,
	}

	out := cmd.Execute(items, nil)
	require.Len(t, out, len(items))
	for i, s := range out {
		assert.Equal(t, strconv.Itoa(i*2), s)
	}
}

func TestExecute_ProgressSequence(t *testing.T) {
	var log progressLog
	cmd := Command[string, int]{Process: func(s string) int { return len(s) }, Workers: 3}

	out := cmd.Execute([]string{"a", "bb", "ccc", "dddd", "eeeee"}, log.sink)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, out)

	require.Len(t, log.calls, 7)
	assert.Equal(t, [2]int{0, 5}, log.calls[0])
	for i := 1; i <= 5; i++ {
		assert.Equal(t, [2]int{i, 5}, log.calls[i], "strictly increasing")
	}
	assert.Equal(t, [2]int{0, 0}, log.calls[6])
}

func TestExecute_Empty(t *testing.T) {
	var log progressLog
	called := false
	cmd := Command[int, int]{
		Preprocess: func(items []int) []int { called = true; return items },
		Process:    func(n int) int { return n },
	}

	assert.Empty(t, cmd.Execute(nil, log.sink))
	assert.Empty(t, cmd.Execute([]int{}, log.sink))
	assert.Empty(t, log.calls)
	assert.False(t, called)
}

func TestExecute_PreprocessRunsFirst(t *testing.T) {
	var processed atomic.Int32
	var sawProcessing bool
	cmd := Command[int, int]{
		Preprocess: func(items []int) []int {
			sawProcessing = processed.Load() > 0
			out := make([]int, len(items))
			for i, v := range items {
				out[len(items)-1-i] = v
			}
			return append(out, 100)
		},
		Process: func(n int) int {
			processed.Add(1)
			return n + 1
		},
	}

	out := cmd.Execute([]int{1, 2, 3}, nil)
	assert.False(t, sawProcessing)
	assert.Equal(t, []int{4, 3, 2, 101}, out)
}

func TestExecute_RespectsWorkerLimit(t *testing.T) {
	var active, peak atomic.Int32
	cmd := Command[int, struct{}]{
		Process: func(int) struct{} {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			active.Add(-1)
			return struct{}{}
		},
		Workers: 2,
	}
	cmd.Execute(make([]int, 20), nil)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestExecuteContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log progressLog
	cmd := Command[int, int]{Process: func(n int) int { return n + 1 }, Workers: 1}
	out := cmd.ExecuteContext(ctx, []int{1, 2, 3}, log.sink)

	assert.Equal(t, []int{0, 0, 0}, out)
	assert.Equal(t, [][2]int{{0, 3}, {0, 0}}, log.calls)
}

func TestExecute_PanicDoesNotAbortBatch(t *testing.T) {
	var (
		log       progressLog
		recovered []int
		mu        sync.Mutex
	)
	cmd := Command[int, int]{
		Process: func(n int) int {
			if n == 2 {
				panic("boom")
			}
			return n * 10
		},
		Recovered: func(n int, v interface{}) {
			mu.Lock()
			defer mu.Unlock()
			recovered = append(recovered, n)
			assert.Equal(t, "boom", v)
		},
		Workers: 2,
	}

	var out []int
	require.NotPanics(t, func() { out = cmd.Execute([]int{1, 2, 3}, log.sink) })
	assert.Equal(t, []int{10, 0, 30}, out)
	assert.Equal(t, []int{2}, recovered)

	require.Len(t, log.calls, 5)
	assert.Equal(t, [2]int{0, 3}, log.calls[0])
	for i := 1; i <= 3; i++ {
		assert.Equal(t, [2]int{i, 3}, log.calls[i])
	}
	assert.Equal(t, [2]int{0, 0}, log.calls[4])
}

func TestExecute_PanicWithoutHook(t *testing.T) {
	cmd := Command[string, string]{Process: func(s string) string {
		if s == "" {
			panic("empty")
		}
		return s + "!"
	}}
	assert.Equal(t, []string{"a!", "", "b!"}, cmd.Execute([]string{"a", "", "b"}, nil))
}

func TestExecute_PreprocessDropsEverything(t *testing.T) {
	var log progressLog
	cmd := Command[int, int]{
		Preprocess: func([]int) []int { return nil },
		Process:    func(n int) int { return n },
	}

	out := cmd.Execute([]int{1, 2, 3}, log.sink)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Empty(t, log.calls)
}
