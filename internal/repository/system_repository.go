package repository

import "context"

// DB疎通確認用
type SystemRepository interface {
	Version(ctx context.Context) (string, error)
}
