package service

import (
	"time"

	"github.com/KostiukVM/BlogAPI/internal/common"
)

// timestamps are stored at microsecond precision, the finest PostgreSQL keeps
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// authorize returns ErrForbidden when ownership is enforced and actorID does not
// own the resource.
func authorize(enforce bool, actorID, ownerID string) error {
	if enforce && actorID != ownerID {
		return common.ErrForbidden
	}
	return nil
}
