package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRemap(t *testing.T) {
	inserted := map[string]int64{
		"hardware":   1,
		"electrical": 2,
	}
	remap := buildRemap(context.Background(), "collections", inserted, []externalRef{
		{id: 40, key: "hardware"},
		{id: 7, key: "electrical"},
		{id: 9, key: "never-inserted"},
	})

	require.Equal(t, Remap{40: 1, 7: 2}, remap)
}

func TestSubcollectionKeyDistinguishesCategories(t *testing.T) {
	a := subcollectionKey("Specialty", "fasteners")
	b := subcollectionKey("Specialty", "wiring")
	require.NotEqual(t, a, b)

	// a separator that could appear in a name must not create
	// ambiguous composites
	require.NotEqual(t,
		subcollectionKey("a", "a1"),
		subcollectionKey("a1", "a"),
	)
}
