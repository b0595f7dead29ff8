package ast

import (
	"fmt"

	"github.com/colt-lang/colt/internal/types"
)

// ProdExprToken is a handle to an expression producing a value
type ProdExprToken struct {
	index uint32
	owner types.OwnerID
}

// Index returns the position of the expression in its buffer
func (t ProdExprToken) Index() uint32 { return t.index }

// Owner returns the id of the buffer that minted the token
func (t ProdExprToken) Owner() types.OwnerID { return t.owner }

// IsValid returns false for the zero token
func (t ProdExprToken) IsValid() bool { return t.owner != 0 }

func (t ProdExprToken) String() string {
	return fmt.Sprintf("ProdExprToken(%d@%d)", t.index, t.owner)
}

// StmtExprToken is a handle to a statement or a declaration. The zero
// value is used for optional statements (a missing else branch, a missing
// parent scope).
type StmtExprToken struct {
	index uint32
	owner types.OwnerID
}

// Index returns the position of the statement in its buffer
func (t StmtExprToken) Index() uint32 { return t.index }

// Owner returns the id of the buffer that minted the token
func (t StmtExprToken) Owner() types.OwnerID { return t.owner }

// IsValid returns false for the zero token
func (t StmtExprToken) IsValid() bool { return t.owner != 0 }

func (t StmtExprToken) String() string {
	return fmt.Sprintf("StmtExprToken(%d@%d)", t.index, t.owner)
}
