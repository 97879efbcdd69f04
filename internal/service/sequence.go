package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Prefixes for each record family's human-readable identifier sequence
const (
	PrefixCutting       = "CUT"
	PrefixManufacturing = "MFG"
	PrefixManualQR      = "MAN"
	PrefixFabric        = "FAB"
	PrefixEmployee      = "EMP"
)

// NextSequenceID computes the next identifier in a numbered sequence
// for a prefix, given the full set of existing identifiers for that
// record family. Identifiers that do not carry the prefix are ignored
// and unparseable numeric suffixes count as 0. The result is the
// maximum suffix plus one, zero-padded to four digits.
func NextSequenceID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil || n < 0 {
			n = 0
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}

// allocateID lists the existing identifiers for a record family and
// computes the next one. When the store is unreachable it falls back
// to the seed value rather than failing; the unique index on the
// identifier column catches any resulting collision at insert time.
func allocateID(ctx context.Context, prefix string, list func(context.Context) ([]string, error)) string {
	ids, err := list(ctx)
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).
			Msg("Failed to list existing IDs, falling back to seed value")
		return prefix + "0001"
	}
	return NextSequenceID(prefix, ids)
}
