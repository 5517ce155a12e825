// Package quota tracks how many photos each guest device has uploaded.
//
// The authoritative count lives on the device and is reported with every
// upload; the server only keeps an advisory in-memory ledger. Everything
// goes through the Authority interface so a durable server-side ledger can
// replace Tracker without touching the callers.
package quota

import (
	"crypto/subtle"
	"log"

	"gallery/models"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// MaxUploads is the default number of photos a single device may upload
const MaxUploads = 30

// Authority decides whether a device may upload more photos
type Authority interface {
	// Count returns the uploads known for the device
	Count(deviceID string) int
	// Reserve atomically checks that `requested` more uploads fit and counts
	// them. `reported` is the count claimed by the client, the higher of the
	// reported and known counts is used.
	Reserve(deviceID string, requested, reported int) bool
	// Release gives back a reservation after a failed upload
	Release(deviceID string, count int)
	// RecordUpload counts uploads confirmed outside Reserve, for a server-side ledger
	RecordUpload(deviceID string, count int)
	Reset(deviceID string)
	ResetAll()
}

// CanUpload is true iff current+requested stays within limit
func CanUpload(limit, requested, current int) bool {
	if requested < 1 || current < 0 {
		return false
	}
	return current+requested <= limit
}

type Tracker struct {
	limit    int
	passcode string
	counts   cmap.ConcurrentMap[string, int]
}

// NewTracker uses MaxUploads if limit <= 0. An empty passcode disables ResetCount.
func NewTracker(limit int, passcode string) *Tracker {
	if limit <= 0 {
		limit = MaxUploads
	}
	return &Tracker{
		limit:    limit,
		passcode: passcode,
		counts:   cmap.New[int](),
	}
}

func (t *Tracker) Limit() int {
	return t.limit
}

func (t *Tracker) CanUpload(deviceID string, requested, current int) bool {
	return CanUpload(t.limit, requested, max(current, t.Count(deviceID)))
}

func (t *Tracker) Count(deviceID string) int {
	count, _ := t.counts.Get(deviceID)
	return count
}

func (t *Tracker) Reserve(deviceID string, requested, reported int) (ok bool) {
	// Upsert holds the shard lock while the callback runs
	t.counts.Upsert(deviceID, 0, func(exist bool, valueInMap, _ int) int {
		current := max(reported, 0)
		if exist {
			current = max(current, valueInMap)
		}
		if !CanUpload(t.limit, requested, current) {
			return current
		}
		ok = true
		return current + requested
	})
	return ok
}

func (t *Tracker) Release(deviceID string, count int) {
	t.counts.Upsert(deviceID, 0, func(exist bool, valueInMap, _ int) int {
		if !exist {
			return 0
		}
		return max(valueInMap-count, 0)
	})
}

// RecordUpload is kept for a future server-side ledger that imports known counts, uploads go through Reserve
func (t *Tracker) RecordUpload(deviceID string, count int) {
	if count <= 0 {
		return
	}
	t.counts.Upsert(deviceID, 0, func(exist bool, valueInMap, _ int) int {
		return min(valueInMap+count, t.limit)
	})
}

func (t *Tracker) Reset(deviceID string) {
	t.counts.Remove(deviceID)
}

func (t *Tracker) ResetAll() {
	t.counts.Clear()
}

// ResetCount zeroes the counter of deviceID, or of every device when it is
// empty, if passcode matches the configured one. This shared passcode is a
// separate gate from the admin bearer tokens.
func (t *Tracker) ResetCount(passcode, deviceID string) error {
	if t.passcode == "" || subtle.ConstantTimeCompare([]byte(passcode), []byte(t.passcode)) != 1 {
		return &models.AuthError{Reason: "Invalid admin passcode"}
	}
	if deviceID == "" {
		t.ResetAll()
		log.Printf("Quota: upload counts reset for all devices")
		return nil
	}
	t.Reset(deviceID)
	log.Printf("Quota: upload count reset for device %s", deviceID)
	return nil
}
