// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lesson

import (
	"strings"

	"github.com/leixing/vocabdeck/pkg/types"
)

// dedupeKey is the normalized (source, target) pair. Whitespace is
// collapsed and the pair is case-folded so reflowed or recapitalized
// repeats of the same entry still collide.
type dedupeKey struct {
	source string
	target string
}

func keyOf(r types.VocabRecord) dedupeKey {
	return dedupeKey{
		source: normalize(r.Source),
		target: normalize(r.Target),
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Deduplicate merges the documents' record sequences into one ordered
// sequence with at most one record per (source, target) key, first
// occurrence wins. A later duplicate contributes its lesson tag to the
// retained record's tag set; its pronunciation is discarded (first-seen
// wins). The seen-set is local to the call, so repeated invocations in
// one process never leak state between runs.
func Deduplicate(docs []types.DocumentResult) []types.VocabRecord {
	seen := make(map[dedupeKey]int)
	var out []types.VocabRecord

	for _, doc := range docs {
		for _, rec := range doc.Records {
			if !rec.Valid() {
				continue
			}
			k := keyOf(rec)
			if i, ok := seen[k]; ok {
				out[i].Tags = mergeTags(out[i].Tags, rec.Tags)
				continue
			}
			seen[k] = len(out)
			out = append(out, rec)
		}
	}

	return out
}

// mergeTags appends the tags not already present, preserving first-seen
// order.
func mergeTags(existing, extra []string) []string {
	for _, tag := range extra {
		found := false
		for _, have := range existing {
			if have == tag {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, tag)
		}
	}
	return existing
}
