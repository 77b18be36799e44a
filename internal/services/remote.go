package services

import (
	"context"

	"github.com/baharkarakas/ypa-web/internal/remote"
)

// Remote is the REST surface of the restaurant backend used by the services.
// *remote.Client satisfies it.
type Remote interface {
	Get(ctx context.Context, path, token string, out any) error
	Post(ctx context.Context, path, token string, in, out any) error
	Put(ctx context.Context, path, token string, in, out any) error
	Delete(ctx context.Context, path, token string) error
}

var _ Remote = (*remote.Client)(nil)

// remoteDetail is the message shown to the user when the backend fails.
func remoteDetail(err error) string {
	if d := remote.DetailOf(err); d != "" {
		return d
	}
	if remote.StatusOf(err) == 0 {
		return "service temporarily unavailable"
	}
	return "request rejected"
}
