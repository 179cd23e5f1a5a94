// Package dsl provides the schema builders for goshape.
//
// Overview
//   - Builders return immutable schema values; every method returns a modified copy.
//   - Primitives: String(), Number(), Boolean(), BigInt(), Date(), Any(), Literal(v), Enum(...), NativeEnum(m).
//   - Containers: Object(Shape), Array(elem), Tuple(items...), Record(v), Map(k, v), Set(elem), Lazy(fn).
//   - Unions: Union(branches...) tries branches in order; DiscriminatedUnion(key, branches...) dispatches on a literal field.
//   - Modifiers shared by every type: Optional/Nullable/Nullish/Default/DefaultFunc/Describe/Messages/Refine/RefineWith.
//
// Evaluation order per node
//  1. Presence: absent input takes the default, or succeeds as goshape.Undefined when optional, else required_field_missing.
//  2. Null: nil succeeds only when nullable (a nullable field with a default yields the default).
//  3. Kind check, then structural recursion into children.
//  4. Constraints in declaration order; the first failure at a node is reported.
//  5. Refinements, only when everything above passed.
//
// Objects
//   - Fields keep declaration order when added with Field; a Shape literal is laid out in key order.
//   - Unknown keys are stripped by default. Strict reports unrecognized_key, Passthrough keeps them, Catchall validates them.
//   - Composition: Pick, Omit, Extend, Merge, Partial, DeepPartial, Required, KeyOf.
//
// File layout (roles)
//   - base.go: shared modifiers, presence/null handling, refinements, ordered checks.
//   - modifiers.go: the modifier method set of every schema type.
//   - values.go: number normalization, literal keys, type names, deep copies.
//   - string.go, number.go, scalar.go, literal.go: leaf schemas.
//   - object.go, array.go, collections.go, union.go, lazy.go: container schemas.
//
// Quickstart
//
//	user := dsl.Object().
//		Field("username", dsl.String().Min(1)).
//		Field("age", dsl.Number().Gt(0).Lt(100)).
//		Field("email", dsl.String().Email().Optional())
//	v, err := goshape.Parse(ctx, user, input)
package dsl
