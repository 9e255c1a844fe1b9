package similarity

import (
	"math"

	"github.com/go-logr/logr"

	"github.com/queelius/cipher-trapdoor-sets/pkg/approx"
	"github.com/queelius/cipher-trapdoor-sets/pkg/config"
	"github.com/queelius/cipher-trapdoor-sets/pkg/errs"
	"github.com/queelius/cipher-trapdoor-sets/pkg/log"
	"github.com/queelius/cipher-trapdoor-sets/pkg/prf"
	"github.com/queelius/cipher-trapdoor-sets/pkg/trapdoor"
)

// DefaultBands and DefaultBandSize are LSH's default banding parameters.
const (
	DefaultBands    = 20
	DefaultBandSize = 5
)

// BandSignature is the B band hashes an LSH maps a trapdoor to.
type BandSignature []uint64

// LSH banded-hashing indexer: maps a trapdoor's hash word to B band hashes,
// each packing R bits selected from RNG-chosen positions. The RNG is
// deterministic in the key, not crypto/rand.
type LSH struct {
	bands    int
	bandSize int
	kf       uint64
	perms    []bandPermutation
	logger   logr.Logger
}

// NewLSH constructs an LSH over bitWidth-bit hash words (typically 8*N),
// keyed by kf, with bands bands of bandSize bits each. bands/bandSize <= 0
// fall back to the package defaults. Logs at a default verbosity-0 logger;
// use NewLSHFromConfig to inject one.
func NewLSH(kf uint64, bitWidth, bands, bandSize int) *LSH {
	if bands <= 0 {
		bands = DefaultBands
	}
	if bandSize <= 0 {
		bandSize = DefaultBandSize
	}

	perms := make([]bandPermutation, bands)
	for b := 0; b < bands; b++ {
		seed := uint32(kf ^ uint64(b))
		perms[b] = newBandPermutation(int64(bitWidth), seed)
	}
	return &LSH{bands: bands, bandSize: bandSize, kf: kf, perms: perms, logger: log.GetLogger(0)}
}

// NewLSHFromConfig constructs an LSH from a resolved config.Config over
// bitWidth-bit hash words, using cfg.PRFBackend/cfg.Key to derive the key
// fingerprint, cfg.LSHBands, cfg.LSHBandSize and cfg.Logger.
func NewLSHFromConfig(cfg config.Config, bitWidth int) (*LSH, error) {
	p, err := prf.New(cfg.PRFBackend, cfg.Key, cfg.HashBytes)
	if err != nil {
		return nil, err
	}
	l := NewLSH(p.Fingerprint(), bitWidth, cfg.LSHBands, cfg.LSHBandSize)
	l.logger = cfg.Logger
	l.logger.V(1).Info("lsh index created", "bands", l.bands, "bandSize", l.bandSize, "kf", l.kf)
	return l, nil
}

func bitAt(bytes []byte, pos int) uint64 {
	byteIdx := pos / 8
	bitIdx := uint(pos % 8)
	return uint64((bytes[byteIdx] >> bitIdx) & 1)
}

// Signature maps t to its B band hashes. Returns ErrIncompatibleKey if t was
// not derived under l's key.
func (l *LSH) Signature(t trapdoor.Token) (BandSignature, error) {
	if t.KF != l.kf {
		l.logger.Info("rejected signature: incompatible key", "indexKF", l.kf, "tokenKF", t.KF)
		return nil, errs.ErrIncompatibleKey
	}

	bytes := t.H.Bytes()
	sig := make(BandSignature, l.bands)
	for b := 0; b < l.bands; b++ {
		var packed uint64
		for r := 0; r < l.bandSize; r++ {
			pos := l.perms[b].shuffle(int64(r))
			packed = packed<<1 | bitAt(bytes, int(pos))
		}
		sig[b] = packed
	}
	return sig, nil
}

// AreSimilar compares two band signatures of the same bandSize and reports
// whether the inverted LSH curve estimate s meets or exceeds tau. Match
// ratio r = M/B; s ≈ (1 − (1−r)^(1/B))^(1/R); σ = 1/√B.
func AreSimilar(a, b BandSignature, bandSize int, tau float64) (approx.Value[bool], error) {
	if len(a) != len(b) {
		return approx.Value[bool]{}, errs.ErrSizeMismatch
	}

	bands := len(a)
	var matches int
	for i := range a {
		if a[i] == b[i] {
			matches++
		}
	}

	r := float64(matches) / float64(bands)
	s := math.Pow(1-math.Pow(1-r, 1.0/float64(bands)), 1.0/float64(bandSize))
	sigma := 1 / math.Sqrt(float64(bands))
	return approx.New(s >= tau, sigma, sigma), nil
}

// Index is a banded LSH candidate index: one bucket map per band, grounded
// in pkg/cuckoo's bucket/stash naming and 1.2n sizing convention (its own
// cuckoo table was an unfinished single-slot stub — Insert/tryAdd/find were
// literal TODO bodies — so this is a completion in spirit, not an
// adaptation of working code). LSH buckets are genuinely multi-valued, so
// this is a complete map[uint64][]int multi-map per band rather than a
// cuckoo table, and is named accordingly.
type Index struct {
	buckets []map[uint64][]int
}

// NewIndex builds an empty Index for bands bands, sized for expectedItems
// candidates per bucket map.
func NewIndex(bands, expectedItems int) *Index {
	size := int(1.2*float64(expectedItems)) + 1
	buckets := make([]map[uint64][]int, bands)
	for b := range buckets {
		buckets[b] = make(map[uint64][]int, size)
	}
	return &Index{buckets: buckets}
}

// Add indexes candidate i under sig's band hashes.
func (idx *Index) Add(i int, sig BandSignature) {
	for b, h := range sig {
		idx.buckets[b][h] = append(idx.buckets[b][h], i)
	}
}

// Query returns the union of candidate indices across every band whose hash
// matches sig, each index appearing once.
func (idx *Index) Query(sig BandSignature) []int {
	seen := make(map[int]struct{})
	var out []int
	for b, h := range sig {
		for _, i := range idx.buckets[b][h] {
			if _, ok := seen[i]; !ok {
				seen[i] = struct{}{}
				out = append(out, i)
			}
		}
	}
	return out
}

// FindSimilar probes index with query, then filters the surfaced candidates
// through AreSimilar at threshold tau, returning the indices that pass.
func FindSimilar(query BandSignature, candidates []BandSignature, index *Index, bandSize int, tau float64) []int {
	var out []int
	for _, i := range index.Query(query) {
		sim, err := AreSimilar(query, candidates[i], bandSize, tau)
		if err == nil && sim.V {
			out = append(out, i)
		}
	}
	return out
}
