package legal

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// VersionHash computes the integrity digest pinned into a version record
// and copied into acceptances for drift detection. The input fields are
// joined with a fixed delimiter; the timestamp must be the version's
// creation instant.
func VersionHash(documentID, slug, label, snapshot string, createdAt time.Time) string {
	input := strings.Join([]string{
		documentID,
		slug,
		label,
		snapshot,
		createdAt.UTC().Format(time.RFC3339Nano),
	}, ":")
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
