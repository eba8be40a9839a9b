package domain

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sopdesk/sopdesk/internal/ports"
)

// Signed links stay valid for a fixed window; they are computed fresh on
// every request and never stored.
const signedLinkTTL = 24 * time.Hour

type LinkResolver struct {
	signer ports.LinkSigner
	log    *zap.SugaredLogger
}

func NewLinkResolver(signer ports.LinkSigner, log *zap.SugaredLogger) *LinkResolver {
	return &LinkResolver{
		signer: signer,
		log:    log,
	}
}

// Resolve exchanges an asset reference for a time-limited signed URL.
// An empty reference means the record has no asset. A signing failure
// degrades to the original reference: a broken link must never take the
// whole record down.
func (r *LinkResolver) Resolve(ctx context.Context, reference string) string {
	if reference == "" {
		return ""
	}

	key := r.storageKey(reference)

	signed, err := r.signer.PresignGet(ctx, key, signedLinkTTL)
	if err != nil {
		r.log.Warnw("presign failed, returning unsigned reference",
			"key", key,
			"error", err,
		)
		return reference
	}
	return signed
}

// storageKey extracts the bucket key from a reference. Absolute URLs
// yield their percent-decoded path without the leading slash; anything
// else is already a key.
func (r *LinkResolver) storageKey(reference string) string {
	if !strings.HasPrefix(reference, "http://") && !strings.HasPrefix(reference, "https://") {
		return reference
	}

	u, err := url.Parse(reference)
	if err != nil {
		r.log.Warnw("unparseable asset url, using raw reference as key",
			"reference", reference,
			"error", err,
		)
		return reference
	}
	return strings.TrimPrefix(u.Path, "/")
}
