package editor

import (
	"github.com/pkg/errors"

	"github.com/stateful/emailbuilder/pkg/document"
	"github.com/stateful/emailbuilder/pkg/document/identity"
)

var ErrIDCollision = errors.New("id generator kept returning ids already in use")

const maxMintAttempts = 16

// Append mints a new id and returns it together with a copy of ids that
// has the new id appended.
func Append(gen identity.Generator, ids []document.BlockID) (document.BlockID, []document.BlockID, error) {
	return InsertAt(gen, ids, len(ids))
}

// InsertAt mints a new id and returns it together with a copy of ids
// that has the new id at index. Elements from index onward shift right.
// index is clamped to [0, len(ids)].
func InsertAt(gen identity.Generator, ids []document.BlockID, index int) (document.BlockID, []document.BlockID, error) {
	return insertAt(gen, ids, index, func(document.BlockID) bool { return false })
}

func insertAt(
	gen identity.Generator,
	ids []document.BlockID,
	index int,
	inUse func(document.BlockID) bool,
) (document.BlockID, []document.BlockID, error) {
	id, err := mint(gen, func(id document.BlockID) bool {
		return id == "" || id == document.RootBlockID || contains(ids, id) || inUse(id)
	})
	if err != nil {
		return "", nil, err
	}

	index = max(0, min(index, len(ids)))

	result := make([]document.BlockID, 0, len(ids)+1)
	result = append(result, ids[:index]...)
	result = append(result, id)
	result = append(result, ids[index:]...)

	return id, result, nil
}

func mint(gen identity.Generator, taken func(document.BlockID) bool) (document.BlockID, error) {
	for i := 0; i < maxMintAttempts; i++ {
		if id := gen.NewID(); !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

func contains(ids []document.BlockID, id document.BlockID) bool {
	return indexOf(ids, id) >= 0
}

func indexOf(ids []document.BlockID, id document.BlockID) int {
	for i, item := range ids {
		if item == id {
			return i
		}
	}
	return -1
}
