// Package dynok provides immutable dynamic objects: type-tagged records whose
// properties hold values from a closed set of kinds, plus a canonical JSON
// encoding that decodes back through the same validation.
//
// Supported kinds:
//
//   - String, Int (int32), Long (int64), Float (float32), Double (float64), Boolean
//   - Object (a nested *Object)
//   - List of any of the above (lists of lists are rejected)
//
// Design policy:
//   - Values enter an Object only through NewProperty/ValueOf; nothing else
//     re-derives or re-checks kinds.
//   - Objects are immutable. Set/Remove/WithType return copies.
//   - Retrieval is exact: Get[int32] does not read a Long.
//   - Decoding rebuilds every nested object with NewObjectFrom, so a decoded
//     object satisfies the same invariants as a constructed one.
//   - Keep only public APIs in the root package; tokenizers and limit
//     enforcement live under internal/, the builder under dsl/ and the CLI
//     under cmd/dynok.
//
// Typical usage:
//
//	customer, err := dynok.NewObject("Customer", map[string]any{
//	    "id":      int64(0),
//	    "email":   "a@b.com",
//	    "premium": true,
//	})
//	email, err := dynok.Get[string](customer, "email")
//	updated, err := customer.Set("email", "c@d.com")
//
//	text := customer.ToJSON()
//	decoded, err := dynok.FromJSON(text)
package dynok
