package posterior

import "math/rand/v2"

// Source is a posterior container that can be queried for draws.
type Source interface {
	// Extract selects draws of one group. It returns errs.ErrGroupNotFound or
	// errs.ErrVariableNotFound for unknown names and errs.ErrSampleCount when
	// more samples are requested than exist.
	Extract(group string, cfg ExtractConfig) (*Dataset, error)
}

// ExtractConfig controls Extract.
type ExtractConfig struct {
	// Combined stacks the chain and draw axes into a single sample axis.
	Combined bool

	// VarNames selects variables; empty selects all. Names starting with "~"
	// exclude instead, in which case every name must start with "~".
	VarNames []string

	// FilterVars sets how VarNames are matched.
	FilterVars FilterMode

	// NumSamples, when positive, keeps a uniform random subset of that many
	// samples, drawn without replacement. Without Combined the subset is
	// taken along the draw axis and shared by all chains.
	NumSamples int

	// RNG drives the subset choice. The zero value is nondeterministic.
	RNG RNG
}

// FilterMode selects how variable names are matched.
type FilterMode uint8

const (
	FilterNone  FilterMode = iota // FilterNone matches names exactly.
	FilterLike                    // FilterLike matches names containing the given text.
	FilterRegex                   // FilterRegex matches names against a regular expression.
)

func (m FilterMode) String() string {
	switch m {
	case FilterNone:
		return "none"
	case FilterLike:
		return "like"
	case FilterRegex:
		return "regex"
	default:
		return "unknown"
	}
}

type rngKind uint8

const (
	rngDefault rngKind = iota
	rngSeed
	rngSource
	rngNoShuffle
)

// RNG chooses how samples are subsampled. The zero value draws from the
// auto-seeded global generator.
type RNG struct {
	kind rngKind
	seed uint64
	src  *rand.Rand
}

// Seed returns a reproducible RNG: the same seed selects the same samples.
func Seed(seed uint64) RNG {
	return RNG{kind: rngSeed, seed: seed}
}

// FromSource draws from a caller-owned generator, advancing its state.
func FromSource(src *rand.Rand) RNG {
	if src == nil {
		return RNG{}
	}

	return RNG{kind: rngSource, src: src}
}

// NoShuffle keeps the leading samples in order instead of a random subset.
func NoShuffle() RNG {
	return RNG{kind: rngNoShuffle}
}

func (r RNG) String() string {
	switch r.kind {
	case rngSeed:
		return "seed"
	case rngSource:
		return "source"
	case rngNoShuffle:
		return "no-shuffle"
	default:
		return "default"
	}
}

// pick returns k distinct positions out of n.
func (r RNG) pick(n, k int) []int {
	var perm []int

	switch r.kind {
	case rngNoShuffle:
		perm = make([]int, k)
		for i := range perm {
			perm[i] = i
		}

		return perm
	case rngSeed:
		perm = rand.New(rand.NewPCG(r.seed, r.seed)).Perm(n)
	case rngSource:
		perm = r.src.Perm(n)
	default:
		perm = rand.Perm(n)
	}

	return perm[:k]
}
