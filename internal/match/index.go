package match

import (
	"math"
	"sort"
	"strconv"
	"time"

	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

const maxNeighbors = 15

// Index is an immutable nearest-neighbor structure over the weighted job
// vectors of one catalog snapshot. The skill vocabulary and the location
// ordinal mapping are fixed at build time; queries must reuse them, never
// refit.
type Index struct {
	version    string
	vocabulary []string
	vocabIndex map[string]int
	locations  map[string]int
	weights    []float64
	jobs       []indexedJob
	matrix     [][]float64
	neighbors  int
}

type indexedJob struct {
	record         JobRecord
	requiredSkills []string
	salary         float64
	isRemote       bool
}

type neighbor struct {
	jobIdx   int
	distance float64
}

// Build encodes the catalog and fits a new index. The previous index (if
// any) is untouched; callers publish the result atomically.
func Build(jobs []JobRecord) (*Index, error) {
	return build(jobs, newBuildVersion())
}

func build(jobs []JobRecord, version string) (*Index, error) {
	if len(jobs) == 0 {
		return nil, appErr.ErrEmptyCatalog
	}

	vocabSet := make(map[string]struct{})
	entries := make([]indexedJob, 0, len(jobs))
	for _, job := range jobs {
		required := ExtractSkills(job.RequiredSkills)
		all := append([]string{}, required...)
		all = append(all, ExtractSkills(job.PreferredSkills)...)
		for _, sk := range all {
			vocabSet[sk] = struct{}{}
		}
		entries = append(entries, indexedJob{
			record:         job,
			requiredSkills: required,
			salary:         cleanSalary(job.SalaryMin, job.SalaryMax),
			isRemote:       jobIsRemote(job),
		})
	}

	vocabulary := make([]string, 0, len(vocabSet))
	for sk := range vocabSet {
		vocabulary = append(vocabulary, sk)
	}
	sort.Strings(vocabulary)
	vocabIndex := make(map[string]int, len(vocabulary))
	for i, sk := range vocabulary {
		vocabIndex[sk] = i
	}

	locations := fitLocations(jobs)
	weights := buildWeights(len(vocabulary))

	matrix := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		skills := append([]string{}, entry.requiredSkills...)
		skills = append(skills, ExtractSkills(entry.record.PreferredSkills)...)
		combined := encodeSkills(skills, vocabIndex, len(vocabulary))
		combined = append(combined, jobTailFeatures(entry.record, float64(locations[locationKey(entry.record.Location)]))...)
		matrix = append(matrix, applyWeights(combined, weights))
	}

	return &Index{
		version:    version,
		vocabulary: vocabulary,
		vocabIndex: vocabIndex,
		locations:  locations,
		weights:    weights,
		jobs:       entries,
		matrix:     matrix,
		neighbors:  minInt(maxNeighbors, len(entries)),
	}, nil
}

// fitLocations label-encodes the distinct job locations, sorted for
// determinism. Missing locations map to "Unknown". Candidate locations not
// seen here resolve to ordinal 0 at query time.
func fitLocations(jobs []JobRecord) map[string]int {
	distinct := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		distinct[locationKey(job.Location)] = struct{}{}
	}
	keys := make([]string, 0, len(distinct))
	for k := range distinct {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	locations := make(map[string]int, len(keys))
	for i, k := range keys {
		locations[k] = i
	}
	return locations
}

func locationKey(location string) string {
	if location == "" {
		return "Unknown"
	}
	return location
}

// EncodeCandidate builds the candidate's weighted vector against the frozen
// vocabulary and location mapping. Unknown skills contribute zero; unknown
// locations fall back to ordinal 0.
func (idx *Index) EncodeCandidate(c CandidateProfile) []float64 {
	vec := encodeSkills(ExtractSkills(c.Skills), idx.vocabIndex, len(idx.vocabulary))
	locationOrdinal := float64(idx.locations[locationKey(c.Location)])
	vec = append(vec, candidateTailFeatures(c, locationOrdinal)...)
	return applyWeights(vec, idx.weights)
}

// query returns the k nearest jobs by Euclidean distance over the weighted
// vectors, ties broken by catalog insertion order.
func (idx *Index) query(vec []float64, k int) []neighbor {
	if k > len(idx.jobs) {
		k = len(idx.jobs)
	}
	out := make([]neighbor, len(idx.matrix))
	for i, row := range idx.matrix {
		out[i] = neighbor{jobIdx: i, distance: euclidean(vec, row)}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].distance < out[b].distance
	})
	return out[:k]
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (idx *Index) Version() string {
	return idx.version
}

func (idx *Index) Vocabulary() []string {
	return append([]string{}, idx.vocabulary...)
}

func (idx *Index) JobCount() int {
	return len(idx.jobs)
}

func (idx *Index) Dimension() int {
	return len(idx.vocabulary) + tailFeatureCount
}

// Vectors exposes the weighted job vectors for persistence, keyed in catalog
// order.
func (idx *Index) Vectors() []JobVectorSnapshot {
	out := make([]JobVectorSnapshot, 0, len(idx.jobs))
	for i, entry := range idx.jobs {
		out = append(out, JobVectorSnapshot{JobID: entry.record.ID, Vector: append([]float64{}, idx.matrix[i]...)})
	}
	return out
}

type JobVectorSnapshot struct {
	JobID  string
	Vector []float64
}

// Meta captures the frozen build-time state needed to restore an index
// without re-encoding: the vocabulary and the location ordinal mapping.
type Meta struct {
	Version    string
	Vocabulary []string
	Locations  map[string]int
	JobCount   int
	Dimension  int
}

func (idx *Index) Meta() Meta {
	locations := make(map[string]int, len(idx.locations))
	for k, v := range idx.locations {
		locations[k] = v
	}
	return Meta{
		Version:    idx.version,
		Vocabulary: idx.Vocabulary(),
		Locations:  locations,
		JobCount:   len(idx.jobs),
		Dimension:  idx.Dimension(),
	}
}

// Restore rebuilds an index from persisted meta and vectors. The jobs slice
// must be the same catalog snapshot in the same order as the original build;
// a job without a persisted vector fails the restore wholesale.
func Restore(meta Meta, jobs []JobRecord, vectors map[string][]float64) (*Index, error) {
	if len(jobs) == 0 {
		return nil, appErr.ErrEmptyCatalog
	}
	if meta.Dimension != len(meta.Vocabulary)+tailFeatureCount || len(jobs) != meta.JobCount {
		return nil, appErr.ErrNotFound
	}
	vocabIndex := make(map[string]int, len(meta.Vocabulary))
	for i, sk := range meta.Vocabulary {
		vocabIndex[sk] = i
	}
	entries := make([]indexedJob, 0, len(jobs))
	matrix := make([][]float64, 0, len(jobs))
	for _, job := range jobs {
		vec, ok := vectors[job.ID]
		if !ok || len(vec) != meta.Dimension {
			return nil, appErr.ErrNotFound
		}
		entries = append(entries, indexedJob{
			record:         job,
			requiredSkills: ExtractSkills(job.RequiredSkills),
			salary:         cleanSalary(job.SalaryMin, job.SalaryMax),
			isRemote:       jobIsRemote(job),
		})
		matrix = append(matrix, vec)
	}
	return &Index{
		version:    meta.Version,
		vocabulary: append([]string{}, meta.Vocabulary...),
		vocabIndex: vocabIndex,
		locations:  meta.Locations,
		weights:    buildWeights(len(meta.Vocabulary)),
		jobs:       entries,
		matrix:     matrix,
		neighbors:  minInt(maxNeighbors, len(entries)),
	}, nil
}

func newBuildVersion() string {
	return time.Now().UTC().Format("20060102150405") + "-" + strconv.FormatInt(time.Now().UnixNano()%1000, 10)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
