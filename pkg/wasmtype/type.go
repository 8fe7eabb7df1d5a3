// Package wasmtype mirrors the host runtime's structural type system: the
// closed sum of Component-Model value kinds and the tagged value union that
// carries typed data across the marshalling boundary.
package wasmtype

// Kind discriminates the structural type variants recognized from the host
// runtime. It is a closed set; no cycles are expressed at this level.
type Kind int

const (
	Bool Kind = iota
	S8
	S16
	S32
	S64
	U8
	U16
	U32
	U64
	F32
	F64
	Char
	String
	List
	Record
	Tuple
	Variant
	Enum
	Option
	Result
	Flags
	Own
	Borrow
	Future
	Stream
	ErrorContext
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case S8:
		return "s8"
	case S16:
		return "s16"
	case S32:
		return "s32"
	case S64:
		return "s64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Char:
		return "char"
	case String:
		return "string"
	case List:
		return "list"
	case Record:
		return "record"
	case Tuple:
		return "tuple"
	case Variant:
		return "variant"
	case Enum:
		return "enum"
	case Option:
		return "option"
	case Result:
		return "result"
	case Flags:
		return "flags"
	case Own:
		return "own"
	case Borrow:
		return "borrow"
	case Future:
		return "future"
	case Stream:
		return "stream"
	case ErrorContext:
		return "error-context"
	default:
		return "unknown"
	}
}

// Field is one named, ordered member of a Record.
type Field struct {
	Name string
	Type *Type
}

// Case is one named variant or enum alternative. Payload is nil for
// enum cases and for no-payload variant cases.
type Case struct {
	Name    string
	Payload *Type
}

// Type is a node in the structural type tree. Only the fields relevant to
// Kind are populated; the rest are zero.
type Type struct {
	Kind Kind

	// List, Option, Future, Stream, Own, Borrow element/payload type.
	Elem *Type

	// Record fields, in declaration order.
	Fields []Field

	// Tuple element types, positional.
	Elems []*Type

	// Variant/Enum cases, in declaration order.
	Cases []Case

	// Result: Ok and Err may each be nil.
	Ok  *Type
	Err *Type

	// Flags names, in declaration order.
	FlagNames []string
}

// Width returns the bit width of an integer Kind, or 0 if Kind is not an
// integer.
func (k Kind) Width() int {
	switch k {
	case S8, U8:
		return 8
	case S16, U16:
		return 16
	case S32, U32:
		return 32
	case S64, U64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether Kind is a signed integer.
func (k Kind) Signed() bool {
	switch k {
	case S8, S16, S32, S64:
		return true
	default:
		return false
	}
}

// Unsigned reports whether Kind is an unsigned integer.
func (k Kind) Unsigned() bool {
	switch k {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// SignedRange returns the inclusive [min, max] range for a signed integer
// Kind of the given width.
func SignedRange(width int) (min, max int64) {
	switch width {
	case 8:
		return -128, 127
	case 16:
		return -32768, 32767
	case 32:
		return -2147483648, 2147483647
	case 64:
		return -9223372036854775808, 9223372036854775807
	}
	return 0, 0
}

// UnsignedMax returns the maximum value representable by an unsigned
// integer Kind of the given width.
func UnsignedMax(width int) uint64 {
	switch width {
	case 8:
		return 1<<8 - 1
	case 16:
		return 1<<16 - 1
	case 32:
		return 1<<32 - 1
	case 64:
		return 1<<64 - 1
	}
	return 0
}
