package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Hash returns the hex SHA-256 of data. Artifact keys use the hash of the
// SVG a raster was converted from.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKeyOpts are the render settings that change a converted artifact.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for converting the SVG with the given
	// hash into another format.
	ArtifactKey(svgHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<format>[@<scale>x]:<svgHash>".
func (DefaultKeyer) ArtifactKey(svgHash string, opts ArtifactKeyOpts) string {
	variant := opts.Format
	if opts.Scale > 0 {
		variant += "@" + strconv.FormatFloat(opts.Scale, 'g', -1, 64) + "x"
	}
	return "artifact:" + variant + ":" + svgHash
}

// ScopedKeyer prefixes another Keyer's keys, typically with the build
// version so entries written by another release are never read back.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArtifactKey(svgHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(svgHash, opts)
}
