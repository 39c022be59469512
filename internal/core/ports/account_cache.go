package ports

import "context"

// AccountCache drops cached account lookups after a mutation so protected
// requests never act on a stale role or active flag longer than necessary.
type AccountCache interface {
	Invalidate(ctx context.Context, username string) error
}
