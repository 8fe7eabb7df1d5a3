package wasmtype

// Value is a typed value produced by the Marshaller (C2) or returned from
// a host function call and consumed by the Demarshaller (C3). Only the
// field relevant to Kind is populated.
type Value struct {
	Kind Kind

	Bool bool
	Int  int64  // s8..s64
	Uint uint64 // u8..u64
	F32  float32
	F64  float64
	Str  string // char, string, and the opaque-handle string rendering

	List []Value // List, Tuple

	Record       []Value // aligned with the originating Type.Fields order
	RecordFields []string

	VariantCase    string
	VariantPayload *Value // nil if the case carries no payload

	EnumCase string

	OptionSome *Value // nil means None

	ResultOk     *Value // Ok payload; nil when the Ok arm carries none
	ResultErr    *Value // Err payload; nil when the Err arm carries none
	ResultHasOk  bool
	ResultHasErr bool

	Flags []string

	// Opaque: own, borrow, future, stream, error-context all carry their
	// string rendering in Str plus, for future/stream, Pending/List.
	Pending bool
}
