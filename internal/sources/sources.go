// Package sources contains the event source adapters. Each adapter turns
// one origin (remote API, local cache blobs, curated guide) into normalized
// events. Adapters are fail-open: a broken source contributes nothing and
// is logged, it never breaks the merge.
package sources

import (
	"context"
	"time"

	"github.com/sandycove/clubapi/internal/models"
)

type Adapter interface {
	Name() string
	// ListEvents returns the adapter's normalized events. Failures are
	// absorbed and logged inside the adapter; the result is simply empty.
	ListEvents(ctx context.Context, now time.Time) []models.Event
}
