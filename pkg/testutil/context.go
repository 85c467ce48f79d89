package testutil

import (
	"context"

	"hdc/pkg/requestcontext"
)

// UserContext returns a context carrying the acting username and workflow
// role, as the auth middleware would set them for an authenticated request.
func UserContext(username, role string) context.Context {
	ctx := requestcontext.WithUsername(context.Background(), username)
	return requestcontext.WithRole(ctx, role)
}
