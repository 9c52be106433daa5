package photos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mgleavitt/lockquests/pkg/logger"
	"github.com/mgleavitt/lockquests/pkg/metrics"
	"github.com/mgleavitt/lockquests/pkg/slug"
)

// Config points the resolver at the static photo host.
type Config struct {
	BaseURL string // e.g. "https://example.github.io/lockquests/photos"
	Timeout time.Duration
}

// probeState is the outcome of a single existence check. A transport error
// is folded into "not found": the probe sequence keeps going and the room
// simply renders its placeholder for this load.
type probeState int

const (
	probeFound probeState = iota
	probeNotFound
	probeError
)

// Resolver determines which, if any, of a room's candidate photo URLs
// actually exists. Photos are uploaded by hand with inconsistent extension
// casing, hence the ordered .jpg then .JPG probe.
type Resolver struct {
	cfg    Config
	client *resty.Client
	log    *zap.Logger
}

// NewResolver builds a resolver over the configured photo host.
func NewResolver(cfg Config) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().SetTimeout(timeout)

	return &Resolver{
		cfg:    cfg,
		client: client,
		log:    logger.WithModule("photos"),
	}
}

// Candidates returns the ordered probe URLs for a room: the zero-padded
// 4-digit id joined to the name slug, lowercase extension first.
func (r *Resolver) Candidates(id int, name string) []string {
	base := fmt.Sprintf("%s/%04d-%s", strings.TrimRight(r.cfg.BaseURL, "/"), id, slug.Make(name))
	return []string{base + ".jpg", base + ".JPG"}
}

// Resolve probes each candidate in order and returns the first that exists.
// The second return is false when no candidate exists or every probe failed;
// a failed probe is never an error, only a missing photo for this load.
func (r *Resolver) Resolve(ctx context.Context, id int, name string) (string, bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	for _, candidate := range r.Candidates(id, name) {
		switch r.probe(ctx, candidate) {
		case probeFound:
			metrics.PhotoProbes.WithLabelValues("found").Inc()
			return candidate, true
		case probeNotFound:
			metrics.PhotoProbes.WithLabelValues("missing").Inc()
		case probeError:
			metrics.PhotoProbes.WithLabelValues("error").Inc()
		}
	}

	return "", false
}

func (r *Resolver) probe(ctx context.Context, url string) probeState {
	resp, err := r.client.R().SetContext(ctx).Head(url)
	if err != nil {
		r.log.Debug("photo probe failed", zap.String("url", url), zap.Error(err))
		return probeError
	}
	if resp.IsSuccess() {
		return probeFound
	}
	return probeNotFound
}
