package index

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bazarlens/bazarlens/model"
)

// fingerprintVersion changes whenever the indexed representation
// changes incompatibly, invalidating externally cached indexes.
const fingerprintVersion = "v2combined"

// Fingerprint computes a stable content hash over the chunk set,
// tagged with the tokenization language. External persistence and
// caching collaborators key built indexes on it: the same fingerprint
// is guaranteed to map to semantically identical search behavior, and
// any change to the underlying records produces a new fingerprint.
func Fingerprint(chunks []model.Chunk, language string) string {
	lines := make([]string, 0, len(chunks))
	for _, c := range chunks {
		lines = append(lines, c.ParentID+"\t"+c.Text)
	}
	contentSig := sha1Hex(strings.Join(lines, "\n"))
	return sha1Hex(fmt.Sprintf("%s|lang=%s|%s", fingerprintVersion, language, contentSig))
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
