package domain_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/kitsnotes/hollywood/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func ref(k domain.Key, i int) domain.EntryRef {
	return domain.EntryRef{Key: k, Index: i}
}

func walk(g *domain.Graph) []domain.EntryRef {
	var out []domain.EntryRef
	for s := range g.Walk() {
		out = append(out, s.Ref)
	}
	return out
}

func TestGraph_AddStep(t *testing.T) {
	g := domain.NewGraph()
	step := domain.Step{Ref: ref(domain.KeyMount, 0), Line: 4}

	require.NoError(t, g.AddStep(step))

	err := g.AddStep(step)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepAlreadyExists)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "mount[0]@4", zErr.Metadata()["step"])
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	a := domain.Step{Ref: ref(domain.KeyFilesystem, 0), Line: 1, Deps: []domain.EntryRef{ref(domain.KeyMount, 0)}}
	b := domain.Step{Ref: ref(domain.KeyMount, 0), Line: 2, Deps: []domain.EntryRef{ref(domain.KeyFilesystem, 0)}}
	require.NoError(t, g.AddStep(a))
	require.NoError(t, g.AddStep(b))

	err := g.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "fs[0]@1 -> mount[0]@2 -> fs[0]@1", zErr.Metadata()["cycle"])
}

func TestGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddStep(domain.Step{
		Ref:  ref(domain.KeyMount, 0),
		Deps: []domain.EntryRef{ref(domain.KeyFilesystem, 3)},
	}))

	err := g.Validate()
	require.ErrorIs(t, err, domain.ErrMissingDependency)

	err = g.AddDependency(ref(domain.KeyMount, 0), ref(domain.KeyPartition, 0))
	require.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestGraph_AddDependency(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddStep(domain.Step{Ref: ref(domain.KeyFilesystem, 0), Rank: 7, Line: 1}))
	require.NoError(t, g.AddStep(domain.Step{Ref: ref(domain.KeyPartition, 0), Rank: 2, Line: 9}))

	require.ErrorIs(t, g.AddDependency(ref(domain.KeyPartition, 0), ref(domain.KeyPartition, 0)), domain.ErrCycleDetected)
	require.NoError(t, g.AddDependency(ref(domain.KeyFilesystem, 0), ref(domain.KeyPartition, 0)))
	require.NoError(t, g.AddDependency(ref(domain.KeyFilesystem, 0), ref(domain.KeyPartition, 0)))

	require.NoError(t, g.Validate())
	assert.Equal(t, []domain.EntryRef{ref(domain.KeyPartition, 0), ref(domain.KeyFilesystem, 0)}, walk(g))
}

func TestGraph_Walk_DependenciesBeatRank(t *testing.T) {
	g := domain.NewGraph()
	// The mount has the highest rank but nothing holds it back except its fs.
	require.NoError(t, g.AddStep(domain.Step{Ref: ref(domain.KeyMount, 0), Rank: 8, Line: 1, Deps: []domain.EntryRef{ref(domain.KeyFilesystem, 0)}}))
	require.NoError(t, g.AddStep(domain.Step{Ref: ref(domain.KeyFilesystem, 0), Rank: 7, Line: 2, Deps: []domain.EntryRef{ref(domain.KeyPartition, 0)}}))
	require.NoError(t, g.AddStep(domain.Step{Ref: ref(domain.KeyPartition, 0), Rank: 2, Line: 3}))
	require.NoError(t, g.AddStep(domain.Step{Ref: ref(domain.KeyDiskLabel, 0), Rank: 1, Line: 4}))

	require.NoError(t, g.Validate())
	assert.Equal(t, []domain.EntryRef{
		ref(domain.KeyDiskLabel, 0),
		ref(domain.KeyPartition, 0),
		ref(domain.KeyFilesystem, 0),
		ref(domain.KeyMount, 0),
	}, walk(g))
}

func TestGraph_Walk_TieBreak(t *testing.T) {
	steps := []domain.Step{
		{Ref: ref(domain.KeyPartition, 0), Rank: 2, Group: "/dev/sda", Seq: 2, Line: 1},
		{Ref: ref(domain.KeyPartition, 1), Rank: 2, Group: "/dev/sda", Seq: 10, Line: 2},
		{Ref: ref(domain.KeyPartition, 2), Rank: 2, Group: "/dev/sda", Seq: 1, Line: 3},
		{Ref: ref(domain.KeyMount, 0), Rank: 8, Seq: 2, Line: 4},
		{Ref: ref(domain.KeyMount, 1), Rank: 8, Seq: 0, Line: 5},
		{Ref: ref(domain.KeyMount, 2), Rank: 8, Seq: 1, Line: 6},
		{Ref: ref(domain.KeyMount, 3), Rank: 8, Seq: 1, Line: 7},
	}
	want := []domain.EntryRef{
		ref(domain.KeyPartition, 2),
		ref(domain.KeyPartition, 0),
		ref(domain.KeyPartition, 1),
		ref(domain.KeyMount, 1),
		ref(domain.KeyMount, 2),
		ref(domain.KeyMount, 3),
		ref(domain.KeyMount, 0),
	}

	for _, order := range [][]int{{0, 1, 2, 3, 4, 5, 6}, {6, 5, 4, 3, 2, 1, 0}, {3, 0, 6, 1, 5, 2, 4}} {
		g := domain.NewGraph()
		for _, i := range order {
			require.NoError(t, g.AddStep(steps[i]))
		}
		require.NoError(t, g.Validate())
		assert.Equal(t, want, walk(g), "insertion order %v", order)
	}

	g := domain.NewGraph()
	for _, s := range slices.Backward(steps) {
		require.NoError(t, g.AddStep(s))
	}
	require.NoError(t, g.Validate())
	count := 0
	for range g.Walk() {
		count++
		break
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, len(steps), g.Len())
}
