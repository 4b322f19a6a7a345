package console

import (
	"testing"

	"github.com/dshills/conio/internal/ansi"
	"github.com/dshills/conio/internal/driver"
)

func TestTokenQueue(t *testing.T) {
	q := newTokenQueue()

	q.Push(nil)
	select {
	case <-q.Signal():
		t.Fatal("empty push signaled")
	default:
	}

	q.Push(ansi.Runes("ab", driver.Record{}))
	q.Push(ansi.Runes("c", driver.Record{}))
	if q.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", q.Len())
	}

	select {
	case <-q.Signal():
	default:
		t.Fatal("push did not signal")
	}

	toks := q.Drain()
	var got string
	for _, tok := range toks {
		got += string(tok.Char)
	}
	if got != "abc" {
		t.Errorf("Drain() = %q, expected abc", got)
	}
	if q.Len() != 0 || len(q.Drain()) != 0 {
		t.Error("queue not empty after Drain")
	}
}

func BenchmarkTokenQueue(b *testing.B) {
	q := newTokenQueue()
	batch := ansi.Runes("\x1b[A", driver.Record{})
	for i := 0; i < b.N; i++ {
		q.Push(batch)
		_ = q.Drain()
	}
}
