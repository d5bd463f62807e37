// File: services/scheduling/errors.go
package scheduling

import "errors"

// ErrStoreUnavailable signals that the slot store could not be reached. No
// mutation has happened; callers should retry after backoff.
var ErrStoreUnavailable = errors.New("slot store unavailable")

// ErrSlotVanished signals that a slot matched moments earlier disappeared
// before the follow-up write. Fatal for the request.
var ErrSlotVanished = errors.New("matched slot no longer exists")
