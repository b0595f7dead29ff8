package types

import (
	"fmt"

	"github.com/colt-lang/colt/internal/errors"
)

// OwnerID identifies the arena that minted a handle. Owner ids are chosen
// by whoever creates the arenas; 0 is never a valid owner.
type OwnerID uint32

// TypeToken is a handle to a type stored in a TypeBuffer
type TypeToken struct {
	index uint32
	owner OwnerID
}

// Index returns the position of the type in its buffer
func (t TypeToken) Index() uint32 { return t.index }

// Owner returns the id of the buffer that minted the token
func (t TypeToken) Owner() OwnerID { return t.owner }

func (t TypeToken) String() string {
	return fmt.Sprintf("TypeToken(%d@%d)", t.index, t.owner)
}

// TypeBuffer stores every type of a program. Identical types are only
// stored once, so two tokens of the same buffer refer to the same type iff
// they are equal.
type TypeBuffer struct {
	owner    OwnerID
	types    []TypeVariant
	names    []string
	interned map[TypeVariant]TypeToken
}

// NewTypeBuffer creates an empty type buffer. The error type is always
// the first type of the buffer.
func NewTypeBuffer(owner OwnerID) *TypeBuffer {
	tb := &TypeBuffer{
		owner:    owner,
		types:    make([]TypeVariant, 0, 32),
		names:    make([]string, 0, 32),
		interned: make(map[TypeVariant]TypeToken, 32),
	}
	tb.intern(ErrorType{})
	return tb
}

// Owner returns the owner id of the buffer
func (tb *TypeBuffer) Owner() OwnerID { return tb.owner }

// Len returns the number of distinct types
func (tb *TypeBuffer) Len() int { return len(tb.types) }

func (tb *TypeBuffer) intern(v TypeVariant) TypeToken {
	if tok, ok := tb.interned[v]; ok {
		return tok
	}
	tok := TypeToken{index: uint32(len(tb.types)), owner: tb.owner}
	tb.types = append(tb.types, v)
	tb.names = append(tb.names, "")
	tb.interned[v] = tok
	return tok
}

// check panics if tok was not minted by this buffer
func (tb *TypeBuffer) check(tok TypeToken) {
	if tok.owner != tb.owner {
		panic(errors.CrossArena("type", uint32(tok.owner), uint32(tb.owner)))
	}
	if int(tok.index) >= len(tb.types) {
		panic(errors.InvalidHandle("type", int(tok.index), len(tb.types)))
	}
}

func (tb *TypeBuffer) ErrorType() TypeToken        { return tb.intern(ErrorType{}) }
func (tb *TypeBuffer) VoidType() TypeToken         { return tb.intern(VoidType{}) }
func (tb *TypeBuffer) AddBuiltin(id BuiltinID) TypeToken { return tb.intern(BuiltinType{ID: id}) }
func (tb *TypeBuffer) AddOpaquePtr() TypeToken     { return tb.intern(OpaquePtrType{}) }
func (tb *TypeBuffer) AddMutOpaquePtr() TypeToken  { return tb.intern(MutOpaquePtrType{}) }

// AddPtr returns the type of a read-only pointer to 'to'
func (tb *TypeBuffer) AddPtr(to TypeToken) TypeToken {
	tb.check(to)
	return tb.intern(PtrType{To: to})
}

// AddMutPtr returns the type of a mutable pointer to 'to'
func (tb *TypeBuffer) AddMutPtr(to TypeToken) TypeToken {
	tb.check(to)
	return tb.intern(MutPtrType{To: to})
}

// Type returns the variant referred to by tok
func (tb *TypeBuffer) Type(tok TypeToken) TypeVariant {
	tb.check(tok)
	return tb.types[tok.index]
}

// TypeName returns the name of the type as written in source code
func (tb *TypeBuffer) TypeName(tok TypeToken) string {
	tb.check(tok)
	if name := tb.names[tok.index]; name != "" {
		return name
	}

	var name string
	switch v := tb.types[tok.index].(type) {
	case ErrorType:
		name = "<error>"
	case VoidType:
		name = "void"
	case BuiltinType:
		name = v.ID.String()
	case PtrType:
		name = "ptr." + tb.TypeName(v.To)
	case MutPtrType:
		name = "mutptr." + tb.TypeName(v.To)
	case OpaquePtrType:
		name = "opaque"
	case MutOpaquePtrType:
		name = "mutopaque"
	}
	tb.names[tok.index] = name
	return name
}

func (tb *TypeBuffer) IsError(tok TypeToken) bool { return tb.Type(tok).Kind() == KindError }
func (tb *TypeBuffer) IsVoid(tok TypeToken) bool  { return tb.Type(tok).Kind() == KindVoid }

func (tb *TypeBuffer) IsBuiltin(tok TypeToken) bool {
	return tb.Type(tok).Kind() == KindBuiltin
}

// Builtin returns the id of a builtin type
func (tb *TypeBuffer) Builtin(tok TypeToken) (BuiltinID, bool) {
	b, ok := tb.Type(tok).(BuiltinType)
	return b.ID, ok
}

// IsBuiltinAnd returns true if tok is a builtin type satisfying pred
func (tb *TypeBuffer) IsBuiltinAnd(tok TypeToken, pred func(BuiltinID) bool) bool {
	id, ok := tb.Builtin(tok)
	return ok && pred(id)
}

// IsPtr returns true for read-only pointers, opaque or not
func (tb *TypeBuffer) IsPtr(tok TypeToken) bool {
	k := tb.Type(tok).Kind()
	return k == KindPtr || k == KindOpaquePtr
}

// IsMutPtr returns true for mutable pointers, opaque or not
func (tb *TypeBuffer) IsMutPtr(tok TypeToken) bool {
	k := tb.Type(tok).Kind()
	return k == KindMutPtr || k == KindMutOpaquePtr
}

// IsAnyPtr returns true for non-opaque pointers
func (tb *TypeBuffer) IsAnyPtr(tok TypeToken) bool {
	k := tb.Type(tok).Kind()
	return k == KindPtr || k == KindMutPtr
}

// IsAnyOpaquePtr returns true for opaque pointers
func (tb *TypeBuffer) IsAnyOpaquePtr(tok TypeToken) bool {
	k := tb.Type(tok).Kind()
	return k == KindOpaquePtr || k == KindMutOpaquePtr
}

// Pointee returns the type pointed to by a non-opaque pointer
func (tb *TypeBuffer) Pointee(tok TypeToken) (TypeToken, bool) {
	switch v := tb.Type(tok).(type) {
	case PtrType:
		return v.To, true
	case MutPtrType:
		return v.To, true
	}
	return TypeToken{}, false
}

// IsSameAs returns true if both types are the same. The error type is the
// same as any other type.
func (tb *TypeBuffer) IsSameAs(a, b TypeToken) bool {
	tb.check(a)
	tb.check(b)
	return a == b || tb.IsError(a) || tb.IsError(b)
}
