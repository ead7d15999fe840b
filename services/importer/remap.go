package importer

import (
	"context"
	"log/slog"
)

// Remap translates the ephemeral external ids of a source export into
// store-assigned internal ids. It is built after a parent entity's
// batch insert completes and consumed while resolving child foreign
// keys; a missing entry means "drop the dependent record".
type Remap map[int64]int64

type externalRef struct {
	id  int64
	key string
}

// buildRemap looks each source record's natural key up among the rows
// actually inserted. Keys that never made it into the store get a
// warning and no mapping entry.
func buildRemap(ctx context.Context, entity string, byNaturalKey map[string]int64, refs []externalRef) Remap {
	out := make(Remap, len(refs))
	for _, ref := range refs {
		internal, ok := byNaturalKey[ref.key]
		if !ok {
			slog.WarnContext(ctx, "source record has no inserted row, omitting mapping",
				"entity", entity,
				"key", ref.key,
				"external_id", ref.id,
			)
			continue
		}
		out[ref.id] = internal
	}
	return out
}

// subcollections carry no slug of their own, so their natural key is
// the composite of name and parent category slug.
func subcollectionKey(name, categorySlug string) string {
	return name + "\x00" + categorySlug
}
