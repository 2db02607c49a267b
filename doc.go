// Package jsonable converts typed Go structs to and from a generic JSON
// value tree while the value is in memory, allowing the tree to be modified
// before converting back.
//
// The tree is the usual dynamic representation: nil, bool, int64/float64,
// string, []any and map[string]any. Types opt in with a
// //jsonable:generate directive and the jsonablegen tool emits the two
// conversion methods:
//
//	//jsonable:generate
//	type Person struct {
//		FirstName string
//		LastName  *string
//	}
//
//	doc, _ := jsonable.Parse([]byte(`{ "first_name": "Andrew" }`))
//	doc, _ = jsonable.ApplyPatch(doc, []byte(`[
//		{ "op": "test", "path": "/first_name", "value": "Andrew" },
//		{ "op": "add", "path": "/last_name", "value": "Marx" }
//	]`))
//	person, err := jsonable.Decode[Person](doc)
//
// Patch application is delegated to github.com/evanphx/json-patch; this
// package only consumes whatever tree results after mutation.
package jsonable
