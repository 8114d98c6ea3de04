package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEditSet(t *testing.T) *Set {
	t.Helper()
	s := NewSet()
	s.SetParameters("/controller", []TypedParam{
		{Name: "speed", Raw: 1.5, Type: "float"},
		{Name: "retries", Raw: 3, Type: "int"},
		{Name: "enabled", Raw: true, Type: "bool"},
		{Name: "frame", Raw: "base_link", Type: "string"},
	})
	return s
}

func TestBeginEdit(t *testing.T) {
	t.Run("editor spec matches the leaf category", func(t *testing.T) {
		s := buildEditSet(t)

		e, err := s.BeginEdit("retries")
		require.NoError(t, err)
		assert.Equal(t, EditorIntSpin, e.Spec().Kind)
		assert.Equal(t, float64(math.MinInt32), e.Spec().Min)
		assert.Equal(t, float64(math.MaxInt32), e.Spec().Max)

		e, err = s.BeginEdit("speed")
		require.NoError(t, err)
		assert.Equal(t, EditorFloatSpin, e.Spec().Kind)
		assert.Equal(t, -1e6, e.Spec().Min)
		assert.Equal(t, 1e6, e.Spec().Max)
		assert.Equal(t, 4, e.Spec().Decimals)
		assert.Equal(t, "1.5000", e.SeedText())

		e, err = s.BeginEdit("enabled")
		require.NoError(t, err)
		assert.Equal(t, EditorToggle, e.Spec().Kind)

		e, err = s.BeginEdit("frame")
		require.NoError(t, err)
		assert.Equal(t, EditorText, e.Spec().Kind)
		assert.Equal(t, "base_link", e.SeedText())
	})

	t.Run("seeded with the current typed value", func(t *testing.T) {
		s := buildEditSet(t)
		e, err := s.BeginEdit("retries")
		require.NoError(t, err)
		assert.Equal(t, int64(3), e.Spec().Seed.Int())
	})

	t.Run("unknown path is refused", func(t *testing.T) {
		s := buildEditSet(t)
		_, err := s.BeginEdit("ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCommit(t *testing.T) {
	t.Run("valid edit round-trips the parsed value", func(t *testing.T) {
		s := buildEditSet(t)
		e, err := s.BeginEdit("retries")
		require.NoError(t, err)
		require.NoError(t, e.Commit("42"))

		leaf, _ := s.Leaf("retries")
		assert.Equal(t, int64(42), leaf.Value().Int())
		assert.Equal(t, "42", leaf.Display())
	})

	t.Run("one event per successful commit, typed", func(t *testing.T) {
		s := NewSet()
		s.SetParameters("/controller", []TypedParam{
			{Name: "speed", Raw: 1.5, Type: "float"},
		})

		var gotPath string
		var gotValue Value
		var events int
		s.OnChange(func(path string, v Value) {
			gotPath, gotValue = path, v
			events++
		})

		e, err := s.BeginEdit("speed")
		require.NoError(t, err)
		require.NoError(t, e.Commit("2.75"))

		assert.Equal(t, 1, events)
		assert.Equal(t, "speed", gotPath)
		assert.Equal(t, CategoryFloat, gotValue.Category())
		assert.Equal(t, 2.75, gotValue.Float())
	})

	t.Run("rejection preserves the prior value and emits nothing", func(t *testing.T) {
		s := buildEditSet(t)
		var events int
		s.OnChange(func(string, Value) { events++ })

		e, err := s.BeginEdit("enabled")
		require.NoError(t, err)
		err = e.Commit("maybe")
		assert.ErrorIs(t, err, ErrParse)

		leaf, _ := s.Leaf("enabled")
		assert.Equal(t, "true", leaf.Display())
		assert.True(t, leaf.Value().Bool())
		assert.Zero(t, events)
	})

	t.Run("integer outside the editor bounds is rejected", func(t *testing.T) {
		s := buildEditSet(t)
		var events int
		s.OnChange(func(string, Value) { events++ })

		e, err := s.BeginEdit("retries")
		require.NoError(t, err)
		err = e.Commit("3000000000")
		assert.ErrorIs(t, err, ErrOutOfRange)

		leaf, _ := s.Leaf("retries")
		assert.Equal(t, int64(3), leaf.Value().Int())
		assert.Equal(t, "3", leaf.Display())
		assert.Zero(t, events)

		e, err = s.BeginEdit("retries")
		require.NoError(t, err)
		assert.ErrorIs(t, e.Commit("-3000000000"), ErrOutOfRange)
	})

	t.Run("float outside the editor bounds is rejected", func(t *testing.T) {
		s := buildEditSet(t)
		var events int
		s.OnChange(func(string, Value) { events++ })

		e, err := s.BeginEdit("speed")
		require.NoError(t, err)
		err = e.Commit("5000000")
		assert.ErrorIs(t, err, ErrOutOfRange)

		leaf, _ := s.Leaf("speed")
		assert.Equal(t, 1.5, leaf.Value().Float())
		assert.Zero(t, events)
	})

	t.Run("float commits are rounded to the editor precision", func(t *testing.T) {
		s := buildEditSet(t)
		e, err := s.BeginEdit("speed")
		require.NoError(t, err)
		require.NoError(t, e.Commit("2.123456789"))

		leaf, _ := s.Leaf("speed")
		assert.Equal(t, 2.1235, leaf.Value().Float())
		assert.Equal(t, "2.1235", leaf.Display())
	})

	t.Run("rollback targets the last accepted value", func(t *testing.T) {
		s := buildEditSet(t)

		e, _ := s.BeginEdit("retries")
		require.NoError(t, e.Commit("7"))

		e, _ = s.BeginEdit("retries")
		assert.ErrorIs(t, e.Commit("seven"), ErrParse)

		leaf, _ := s.Leaf("retries")
		assert.Equal(t, int64(7), leaf.Value().Int())
		assert.Equal(t, "7", leaf.Display())
	})

	t.Run("rollback tracks refreshed values", func(t *testing.T) {
		s := buildEditSet(t)
		s.UpdateValues([]PathParam{{Path: "speed", Raw: 4.5}})

		e, _ := s.BeginEdit("speed")
		assert.ErrorIs(t, e.Commit("junk"), ErrParse)

		leaf, _ := s.Leaf("speed")
		assert.Equal(t, 4.5, leaf.Value().Float())
	})

	t.Run("string edits always succeed", func(t *testing.T) {
		s := buildEditSet(t)
		e, _ := s.BeginEdit("frame")
		require.NoError(t, e.Commit("odom"))

		leaf, _ := s.Leaf("frame")
		assert.Equal(t, "odom", leaf.Value().Str())
	})

	t.Run("toggle commit is immediate and typed", func(t *testing.T) {
		s := buildEditSet(t)
		var gotValue Value
		s.OnChange(func(_ string, v Value) { gotValue = v })

		e, _ := s.BeginEdit("enabled")
		e.CommitBool(false)

		leaf, _ := s.Leaf("enabled")
		assert.False(t, leaf.Value().Bool())
		assert.Equal(t, CategoryBool, gotValue.Category())
	})

	t.Run("an edit commits at most once", func(t *testing.T) {
		s := buildEditSet(t)
		var events int
		s.OnChange(func(string, Value) { events++ })

		e, _ := s.BeginEdit("retries")
		require.NoError(t, e.Commit("5"))
		assert.NoError(t, e.Commit("6"))

		leaf, _ := s.Leaf("retries")
		assert.Equal(t, int64(5), leaf.Value().Int())
		assert.Equal(t, 1, events)
	})

	t.Run("commit after a rebuild is a no-op", func(t *testing.T) {
		s := buildEditSet(t)
		e, _ := s.BeginEdit("retries")

		s.SetPathParameters([]PathParam{{Path: "fresh", Raw: 1}})
		assert.ErrorIs(t, e.Commit("42"), ErrNotFound)
	})

	t.Run("cancel leaves the leaf untouched", func(t *testing.T) {
		s := buildEditSet(t)
		e, _ := s.BeginEdit("retries")
		e.Cancel()
		e.Commit("99")

		leaf, _ := s.Leaf("retries")
		assert.Equal(t, int64(3), leaf.Value().Int())
	})
}

func TestScenarioSpeedEdit(t *testing.T) {
	// build from {"speed": {value: 1.5, type: float}}, edit to "2.75"
	s := NewSet()
	s.SetParameters("/tuner", []TypedParam{{Name: "speed", Raw: 1.5, Type: "float"}})

	var gotPath string
	var gotValue Value
	s.OnChange(func(path string, v Value) { gotPath, gotValue = path, v })

	e, err := s.BeginEdit("speed")
	require.NoError(t, err)
	require.NoError(t, e.Commit("2.75"))

	assert.Equal(t, "speed", gotPath)
	assert.Equal(t, 2.75, gotValue.Interface())
}
