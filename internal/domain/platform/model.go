package platform

import (
	"github.com/resello/resello/internal/types"
)

// Platform is an upstream service being resold, e.g. a streaming provider.
type Platform struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Website string `db:"website" json:"website"`
	Notes   string `db:"notes" json:"notes"`
	types.BaseModel
}
