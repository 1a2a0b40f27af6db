package logo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/sync/singleflight"

	"pactly/internal/logger"
	"pactly/internal/pdfexport"
	"pactly/internal/port"
)

// Source returns raw image bytes for a logo reference.
type Source interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Loader resolves logo references to embeddable PNGs. Results are cached
// when a cache is configured, and concurrent loads of the same reference
// share one fetch.
type Loader struct {
	src   Source
	cache port.LogoCache
	log   *logger.Logger
	group singleflight.Group
}

// NewLoader creates a Loader. cache may be nil.
func NewLoader(src Source, cache port.LogoCache, log *logger.Logger) *Loader {
	return &Loader{src: src, cache: cache, log: log.With("component", "logo_loader")}
}

var _ pdfexport.LogoSource = (*Loader)(nil)

// Load implements pdfexport.LogoSource.
func (l *Loader) Load(ctx context.Context, ref string) (*pdfexport.Logo, error) {
	v, err, _ := l.group.Do(ref, func() (interface{}, error) {
		return l.load(ctx, ref)
	})
	if err != nil {
		return nil, err
	}
	data := v.([]byte)
	return &pdfexport.Logo{Name: imageName(data), PNG: data}, nil
}

func (l *Loader) load(ctx context.Context, ref string) ([]byte, error) {
	if l.cache != nil {
		data, ok, err := l.cache.Get(ctx, ref)
		if err != nil {
			l.log.Warn("logo cache read failed", "error", err)
		} else if ok {
			return data, nil
		}
	}

	raw, err := l.src.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	data, err := Normalize(raw, MaxSide)
	if err != nil {
		return nil, fmt.Errorf("logo normalize: %w", err)
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, ref, data); err != nil {
			l.log.Warn("logo cache write failed", "error", err)
		}
	}
	return data, nil
}

func imageName(data []byte) string {
	sum := sha256.Sum256(data)
	return "logo-" + hex.EncodeToString(sum[:])[:16]
}
