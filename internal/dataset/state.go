package dataset

import (
	"fmt"
	"sync"
	"time"

	apperrors "hklcompare/internal/errors"
	"hklcompare/internal/merging"
	"hklcompare/internal/reflection"
	"hklcompare/internal/symmetry"
)

// Status is the lifecycle state of one dataset slot.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusMerged  Status = "merged"
	StatusError   Status = "error"
)

var transitions = map[Status][]Status{
	StatusEmpty:   {StatusLoading},
	StatusLoading: {StatusLoaded, StatusError, StatusEmpty},
	StatusLoaded:  {StatusLoading, StatusMerged, StatusEmpty},
	StatusMerged:  {StatusLoaded, StatusLoading, StatusEmpty},
	StatusError:   {StatusLoading, StatusEmpty},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Dataset is one reflection file loaded into a comparison slot together
// with its reduced groups. It is safe for concurrent use.
type Dataset struct {
	mu sync.RWMutex

	slot   int
	label  string
	status Status

	path        string
	format      reflection.Format
	reflections []reflection.Reflection
	loadedAt    time.Time
	err         error

	// groups is cached for the symmetry it was reduced with
	groups      merging.Groups
	groupsLabel string
}

// New creates an empty dataset for slot (1 or 2).
func New(slot int, label string) *Dataset {
	return &Dataset{slot: slot, label: label, status: StatusEmpty}
}

func (d *Dataset) transition(to Status) error {
	if !CanTransition(d.status, to) {
		return apperrors.NewStateError(fmt.Sprintf("dataset %d cannot go from %s to %s", d.slot, d.status, to)).
			WithContext("slot", d.slot).
			WithContext("status", string(d.status))
	}
	d.status = to
	return nil
}

// BeginLoad marks the slot as loading path.
func (d *Dataset) BeginLoad(path string, format reflection.Format) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transition(StatusLoading); err != nil {
		return err
	}
	d.path, d.format, d.err = path, format, nil
	return nil
}

// CompleteLoad stores the parsed reflections and drops any cached groups.
func (d *Dataset) CompleteLoad(refls []reflection.Reflection) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transition(StatusLoaded); err != nil {
		return err
	}
	d.reflections = refls
	d.loadedAt = time.Now()
	d.groups, d.groupsLabel = nil, ""
	return nil
}

// FailLoad records a load failure.
func (d *Dataset) FailLoad(cause error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transition(StatusError); err != nil {
		return err
	}
	d.err = cause
	d.reflections = nil
	d.groups, d.groupsLabel = nil, ""
	return nil
}

// MarkMerged records that the slot took part in a merge. Merging again
// while already merged is a no-op.
func (d *Dataset) MarkMerged() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status == StatusMerged {
		return nil
	}
	return d.transition(StatusMerged)
}

// Unmerge returns a merged slot to loaded, e.g. after a symmetry change.
func (d *Dataset) Unmerge() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status == StatusMerged {
		d.status = StatusLoaded
	}
}

// Reset empties the slot from any state.
func (d *Dataset) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = StatusEmpty
	d.path, d.format, d.err = "", "", nil
	d.reflections = nil
	d.loadedAt = time.Time{}
	d.groups, d.groupsLabel = nil, ""
}

// Status returns the current state.
func (d *Dataset) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

// Ready reports whether reflections are available.
func (d *Dataset) Ready() bool {
	s := d.Status()
	return s == StatusLoaded || s == StatusMerged
}

// Count is the number of parsed reflections.
func (d *Dataset) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.reflections)
}

// Label returns the display label.
func (d *Dataset) Label() string {
	return d.label
}

// Reduce aggregates the reflections under set. The result is cached until
// the next load or a different symmetry label.
func (d *Dataset) Reduce(set *symmetry.OperatorSet) (merging.Groups, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != StatusLoaded && d.status != StatusMerged {
		return nil, apperrors.NewStateError(fmt.Sprintf("dataset %d is %s, not loaded", d.slot, d.status)).
			WithContext("slot", d.slot)
	}
	if d.groups != nil && d.groupsLabel == set.Label {
		return d.groups, nil
	}
	d.groups = merging.Aggregate(d.reflections, set)
	d.groupsLabel = set.Label
	return d.groups, nil
}

// Info is a point-in-time view of a dataset.
type Info struct {
	Slot        int
	Label       string
	Status      Status
	Path        string
	Format      reflection.Format
	Reflections int
	Unique      int
	LoadedAt    time.Time
	Error       string
}

// Snapshot returns the current Info.
func (d *Dataset) Snapshot() Info {
	d.mu.RLock()
	defer d.mu.RUnlock()
	info := Info{
		Slot:        d.slot,
		Label:       d.label,
		Status:      d.status,
		Path:        d.path,
		Format:      d.format,
		Reflections: len(d.reflections),
		Unique:      len(d.groups),
		LoadedAt:    d.loadedAt,
	}
	if d.err != nil {
		info.Error = d.err.Error()
	}
	return info
}
