// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// Lookup resolves a canonical name to the identifier of a reference row.
// A miss is reported as found=false, never as an error.
type Lookup interface {
	FindIDByName(ctx context.Context, variant Variant, name string) (id string, found bool, err error)
}

// Repository is the read side of the reference tables.
type Repository interface {
	Lookup

	List(ctx context.Context, variant Variant, activeOnly bool) ([]Entity, error)
	Get(ctx context.Context, variant Variant, id string) (*Entity, error)
}
