package types

// TypeKind identifies the variant of a type
type TypeKind uint8

const (
	KindError TypeKind = iota
	KindBuiltin
	KindVoid
	KindPtr
	KindMutPtr
	KindOpaquePtr
	KindMutOpaquePtr
)

// TypeVariant is implemented by every type stored in a TypeBuffer. The set
// of variants is closed. Variants are comparable, which is what interning
// relies on.
type TypeVariant interface {
	Kind() TypeKind
	typeVariant()
}

// ErrorType is the type of an erroneous expression. It is compatible with
// every other type so that a single error does not cascade.
type ErrorType struct{}

// BuiltinType is a bool, char, integral, floating point or bytes type
type BuiltinType struct {
	ID BuiltinID
}

// VoidType is the type of statements and of expressions without value
type VoidType struct{}

// PtrType is a pointer through which the pointee can only be read
type PtrType struct {
	To TypeToken
}

// MutPtrType is a pointer through which the pointee can be written
type MutPtrType struct {
	To TypeToken
}

// OpaquePtrType is a read-only pointer to unknown data
type OpaquePtrType struct{}

// MutOpaquePtrType is a mutable pointer to unknown data
type MutOpaquePtrType struct{}

func (ErrorType) Kind() TypeKind        { return KindError }
func (BuiltinType) Kind() TypeKind      { return KindBuiltin }
func (VoidType) Kind() TypeKind         { return KindVoid }
func (PtrType) Kind() TypeKind          { return KindPtr }
func (MutPtrType) Kind() TypeKind       { return KindMutPtr }
func (OpaquePtrType) Kind() TypeKind    { return KindOpaquePtr }
func (MutOpaquePtrType) Kind() TypeKind { return KindMutOpaquePtr }

func (ErrorType) typeVariant()        {}
func (BuiltinType) typeVariant()      {}
func (VoidType) typeVariant()         {}
func (PtrType) typeVariant()          {}
func (MutPtrType) typeVariant()       {}
func (OpaquePtrType) typeVariant()    {}
func (MutOpaquePtrType) typeVariant() {}
