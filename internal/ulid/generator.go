package ulid

import (
	"io"
	"math/rand"
	"regexp"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once
)

// DefaultEntropy returns a process-wide monotonic entropy reader.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// Crockford's Base32 without I, L, O and U.
var ulidRe = regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)

// Valid checks if the given string is a valid ULID:
//
//	 01AN4Z07BY      79KA1307SR9X4MV3
//	|----------|    |----------------|
//	 Timestamp          Randomness
func Valid(id string) bool {
	if !ulidRe.MatchString(id) {
		return false
	}
	_, err := ulid.Parse(id)
	return err == nil
}

// Source mints ULIDs from a clock and an entropy reader. The zero value
// is not usable; use NewSource.
type Source struct {
	now     func() time.Time
	entropy io.Reader
}

type SourceOption func(*Source)

func WithClock(now func() time.Time) SourceOption {
	return func(s *Source) { s.now = now }
}

func WithEntropy(r io.Reader) SourceOption {
	return func(s *Source) { s.entropy = r }
}

func NewSource(opts ...SourceOption) *Source {
	s := &Source{
		now:     time.Now,
		entropy: DefaultEntropy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns a new ULID string. IDs from the same source are strictly
// increasing within a millisecond when the entropy is monotonic.
func (s *Source) Next() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}
