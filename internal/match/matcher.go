package match

import (
	"sync/atomic"

	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

// Matcher holds the currently published index. Rebuilds happen aside and are
// published with one atomic swap, so an in-flight query keeps working against
// the snapshot it captured and never observes a half-built index.
type Matcher struct {
	current atomic.Pointer[Index]
}

func NewMatcher() *Matcher {
	return &Matcher{}
}

func (m *Matcher) Build(jobs []JobRecord) (*Index, error) {
	idx, err := Build(jobs)
	if err != nil {
		return nil, err
	}
	m.current.Store(idx)
	return idx, nil
}

// Publish installs a restored index. Used for warm restarts.
func (m *Matcher) Publish(idx *Index) {
	if idx != nil {
		m.current.Store(idx)
	}
}

func (m *Matcher) Ready() bool {
	return m.current.Load() != nil
}

// Snapshot returns the published index, or ErrIndexNotBuilt before the first
// successful build.
func (m *Matcher) Snapshot() (*Index, error) {
	idx := m.current.Load()
	if idx == nil {
		return nil, appErr.ErrIndexNotBuilt
	}
	return idx, nil
}

func (m *Matcher) Recommend(c CandidateProfile, n int) ([]Recommendation, error) {
	idx, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	return idx.Recommend(c, n), nil
}
