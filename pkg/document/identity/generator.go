// Package identity mints block ids. Generators are injected into the
// editor so tests can assert exact ids.
package identity

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/stateful/emailbuilder/internal/ulid"
	"github.com/stateful/emailbuilder/pkg/document"
)

type Generator interface {
	NewID() document.BlockID
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() document.BlockID

func (f GeneratorFunc) NewID() document.BlockID { return f() }

type ulidGenerator struct {
	source *ulid.Source
}

// ULID returns the default generator. Ids are ULIDs which sort by
// creation time.
func ULID() Generator {
	return &ulidGenerator{source: ulid.NewSource()}
}

func NewULID(source *ulid.Source) Generator {
	return &ulidGenerator{source: source}
}

func (g *ulidGenerator) NewID() document.BlockID {
	return document.BlockID(g.source.Next())
}

// SequentialGenerator returns prefix-1, prefix-2, and so on.
type SequentialGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func Sequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix, next: 1}
}

func (g *SequentialGenerator) NewID() document.BlockID {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := document.BlockID(fmt.Sprintf("%s-%d", g.prefix, g.next))
	g.next++
	return id
}

// Fixed returns the given ids in order and then repeats the last one.
// Useful for provoking collisions in tests.
func Fixed(ids ...document.BlockID) Generator {
	if len(ids) == 0 {
		panic("identity: Fixed requires at least one id")
	}
	var (
		mu  sync.Mutex
		pos int
	)
	return GeneratorFunc(func() document.BlockID {
		mu.Lock()
		defer mu.Unlock()
		id := ids[pos]
		if pos < len(ids)-1 {
			pos++
		}
		return id
	})
}

// ByName resolves a generator from its configuration name.
func ByName(name string) (Generator, error) {
	switch name {
	case "", "ulid":
		return ULID(), nil
	case "sequential":
		return Sequential("block"), nil
	default:
		return nil, errors.Errorf("unknown id generator %q", name)
	}
}
