package diff

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakePatch_ApplyRestoresNext(t *testing.T) {
	prev := "buy milk and bread"
	next := "buy milk, eggs and bread tomorrow"

	patch := MakePatch(prev, next)
	require.NotEmpty(t, patch)

	got, ok, err := ApplyPatch(prev, patch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, next, got)
}

func TestMakePatch_Identical(t *testing.T) {
	assert.Empty(t, MakePatch("same", "same"))

	got, ok, err := ApplyPatch("same", "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "same", got)
}

func TestApplyPatch_Malformed(t *testing.T) {
	_, _, err := ApplyPatch("x", "@@ not a patch")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize("meeting at five", "meeting at six")
	assert.Greater(t, s.Inserted, 0)
	assert.Greater(t, s.Deleted, 0)

	assert.Equal(t, Stats{Inserted: 3}, Summarize("", "abc"))
}

func TestProperty_PatchRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("applying the patch to prev yields next", prop.ForAll(
		func(prev, next string) bool {
			got, ok, err := ApplyPatch(prev, MakePatch(prev, next))
			return err == nil && ok && got == next
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
