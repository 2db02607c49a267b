package jsonable

import (
	jsonpatch "github.com/evanphx/json-patch"
)

// ApplyPatch applies an RFC 6902 JSON Patch document to a value tree and
// returns the mutated tree. Patch semantics are entirely those of
// evanphx/json-patch; the tree is rendered to JSON text, patched, and
// re-parsed. The input tree is not modified.
func ApplyPatch(doc any, patch []byte) (any, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	data, err := Dump(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(data)
	if err != nil {
		return nil, err
	}
	return Parse(out)
}
