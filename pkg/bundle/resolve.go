package bundle

import (
	"os"

	"github.com/aretw0/cofiy/pkg/core"
)

// Resolver returns a candidate path for the bytes of an attachment.
// An empty string means the resolver has no candidate.
type Resolver func(a core.Attachment) string

// FilePath offers the attachment's current path.
func FilePath(a core.Attachment) string { return a.FilePath }

// OriginalPath offers the path the attachment was first known under.
func OriginalPath(a core.Attachment) string { return a.OriginalPath }

// DefaultResolvers is the chain used unless WithResolvers says otherwise.
func DefaultResolvers() []Resolver {
	return []Resolver{FilePath, OriginalPath}
}

// resolve returns the first candidate that names an existing regular file.
func (c *Codec) resolve(a core.Attachment) (string, bool) {
	for _, r := range c.resolvers {
		p := r(a)
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
