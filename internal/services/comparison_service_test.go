package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hklcompare/internal/config"
	apperrors "hklcompare/internal/errors"
	"hklcompare/internal/infrastructure"
	"hklcompare/internal/statistics"
)

func newTestService(t *testing.T, capacity int) *ComparisonService {
	t.Helper()
	return NewComparisonService(NewComparisonStore(capacity), config.Default().Comparison, nil, nil, infrastructure.NoopBusinessMetrics())
}

func TestRequestFromConfig(t *testing.T) {
	c := config.Default().Comparison
	req := RequestFromConfig(c)

	assert.Equal(t, "-1", req.Symmetry)
	assert.Equal(t, statistics.ScaleAuto, req.Statistics.Scale)
	assert.Equal(t, statistics.RatioSigma, req.Statistics.Ratio)
	assert.Equal(t, 0.5, req.Statistics.SigmaCutoff)
	assert.True(t, req.Parse.UsedOnly)
	assert.True(t, req.Parse.KeepResolution)

	c.AutoScale = false
	c.Scale = 3
	req = RequestFromConfig(c)
	assert.Equal(t, statistics.ScaleFixed, req.Statistics.Scale)
	assert.Equal(t, 3.0, req.Statistics.FixedScale)
}

func TestComparisonService_Compare(t *testing.T) {
	svc := newTestService(t, 4)
	first, second := writeDatasets(t)

	req := svc.DefaultRequest()
	req.File1, req.File2 = first, second

	c, err := svc.Compare(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, ComparisonCompleted, c.Status)
	assert.Empty(t, c.Error)
	assert.Len(t, c.Merge.Rows, 2)
	require.NotNil(t, c.Stats)
	assert.InDelta(t, 2.0, c.Stats.Scale, 1e-12)
	assert.Equal(t, 4, c.Datasets[0].Reflections)
	assert.Equal(t, 3, c.Datasets[1].Reflections)

	got, err := svc.Get(c.ID)
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Len(t, svc.List(), 1)

	require.NoError(t, svc.Delete(c.ID))
	_, err = svc.Get(c.ID)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestComparisonService_Failures(t *testing.T) {
	first, second := writeDatasets(t)

	tests := []struct {
		name       string
		mutate     func(*CompareRequest)
		wantType   apperrors.ErrorType
		wantStored bool
	}{
		{
			name:     "missing file",
			mutate:   func(r *CompareRequest) { r.File2 = filepath.Join(filepath.Dir(second), "absent.hkl") },
			wantType: "",
		},
		{
			name:     "unknown symmetry",
			mutate:   func(r *CompareRequest) { r.Symmetry = "p21/c" },
			wantType: apperrors.ErrTypeSymmetry,
		},
		{
			name:     "invalid options",
			mutate:   func(r *CompareRequest) { r.Statistics.SigmaCutoff = -1 },
			wantType: apperrors.ErrTypeValidation,
		},
		{
			name:       "nothing survives the cutoff",
			mutate:     func(r *CompareRequest) { r.Statistics.SigmaCutoff = 1e6 },
			wantType:   apperrors.ErrTypeNoData,
			wantStored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, 4)
			req := svc.DefaultRequest()
			req.File1, req.File2 = first, second
			tt.mutate(&req)

			c, err := svc.Compare(context.Background(), req)
			require.Error(t, err)
			if tt.wantType != "" {
				assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
			} else {
				assert.ErrorIs(t, err, os.ErrNotExist)
			}

			if !tt.wantStored {
				assert.Nil(t, c)
				assert.Empty(t, svc.List())
				return
			}
			require.NotNil(t, c)
			assert.Equal(t, ComparisonFailed, c.Status)
			assert.Nil(t, c.Stats)
			assert.NotEmpty(t, c.Error)
			assert.NotNil(t, c.Merge)
			stored, err := svc.Get(c.ID)
			require.NoError(t, err)
			assert.Equal(t, ComparisonFailed, stored.Status)
		})
	}
}

func TestComparisonStore(t *testing.T) {
	store := NewComparisonStore(2)

	ids := make([]string, 3)
	for i := range ids {
		ids[i] = store.Put(&Comparison{Status: fmt.Sprint(i)})
	}
	assert.Equal(t, 2, store.Len())

	_, err := store.Get(ids[0])
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound), "oldest evicted")

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)

	// re-putting an existing ID replaces in place
	store.Put(&Comparison{ID: ids[1], Status: "replaced"})
	assert.Equal(t, 2, store.Len())
	c, err := store.Get(ids[1])
	require.NoError(t, err)
	assert.Equal(t, "replaced", c.Status)

	require.NoError(t, store.Delete(ids[1]))
	assert.Error(t, store.Delete(ids[1]))
	assert.Equal(t, 1, store.Len())

	assert.Equal(t, 1, NewComparisonStore(0).capacity)
}
