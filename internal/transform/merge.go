package transform

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Merge combines chunk-level JSON fragment strings into a single
// pretty-printed JSON document.
//
// An empty input yields "". A single fragment is returned verbatim without
// any parsing or re-serialization, so callers that already hold one valid
// response pay nothing for the merge; this also means a sole malformed
// fragment passes through unchecked. With two or more fragments, each is
// parsed independently: fragments that fail to parse, or whose top-level
// value is not an object, contribute nothing and are logged. Keys from later
// fragments overwrite earlier ones.
//
// Merge never fails: if the accumulated document cannot be serialized, the
// error text itself is returned so downstream steps always receive a string.
func Merge(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	if len(fragments) == 1 {
		return fragments[0]
	}

	merged := map[string]any{}
	for i, frag := range fragments {
		var v any
		if err := json.Unmarshal([]byte(frag), &v); err != nil {
			zap.L().Warn("skipping unparseable fragment",
				zap.Int("fragment", i), zap.Error(err))
			continue
		}
		obj, ok := v.(map[string]any)
		if !ok {
			zap.L().Warn("skipping non-object fragment", zap.Int("fragment", i))
			continue
		}
		for k, val := range obj {
			merged[k] = val
		}
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		zap.L().Warn("merged document could not be serialized", zap.Error(err))
		return err.Error()
	}
	return string(out)
}
