package fingerprint

import (
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/yelinaung/go-haikunator"
)

// Fingerprint identifies a plot request. Requests that differ only in
// whitespace share a fingerprint.
type Fingerprint struct {
	seed uint64
}

func (fg Fingerprint) Haiku() string                  { return haikunator.New(int64(fg.seed)).Haikunate() }
func (fg Fingerprint) String() string                 { return fg.Haiku() }
func (fg Fingerprint) MatchesHaiku(haiku string) bool { return fg.Haiku() == haiku }

// FileName returns plot-<haiku>.<ext>.
func (fg Fingerprint) FileName(ext string) string {
	return "plot-" + fg.Haiku() + "." + strings.TrimPrefix(ext, ".")
}

// Of fingerprints the mode and expression text of a request.
func Of(mode, text string) Fingerprint {
	h := fnv.New64a()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write([]byte(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)))
	return Fingerprint{seed: h.Sum64()}
}
