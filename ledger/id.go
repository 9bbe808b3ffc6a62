package ledger

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 5

// suffixSpace is 36^5, the number of distinct base36 suffixes.
const suffixSpace = 36 * 36 * 36 * 36 * 36

// NewOrderID returns an id of the form ORD-<unix millis>-<5 base36 chars>.
// The suffix comes from a random UUID; the ledger retries on collision.
func NewOrderID(now time.Time) string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % suffixSpace
	suffix := strings.ToUpper(strconv.FormatUint(n, 36))
	if len(suffix) < suffixLen {
		suffix = strings.Repeat("0", suffixLen-len(suffix)) + suffix
	}
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
