// File: database/repository/slot/filters.go
package slotRepo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// overlapFilter matches booked slots whose window collides with [start, end).
// The three clauses and their boundary inclusions are load-bearing: conflict
// behavior at boundary timestamps depends on exactly this mix of strict and
// non-strict comparisons, so do not replace them with a two-clause overlap
// test.
//
//	(a) stored start falls inside the candidate:  start <  end' && start >= start'
//	(b) stored end falls inside the candidate:    end   >  start' && end  <= end'
//	(c) stored window contains the candidate:     start <= start' && end  >= end'
//
// where the primes denote the candidate window.
func overlapFilter(start, end time.Time) bson.M {
	return bson.M{
		"booked": true,
		"$or": bson.A{
			bson.M{"start_time": bson.M{"$lt": end, "$gte": start}},
			bson.M{"end_time": bson.M{"$gt": start, "$lte": end}},
			bson.M{"start_time": bson.M{"$lte": start}, "end_time": bson.M{"$gte": end}},
		},
	}
}

// exactUnbookedFilter matches the unbooked slot with exactly this window.
func exactUnbookedFilter(start, end time.Time) bson.M {
	return bson.M{
		"start_time": start,
		"end_time":   end,
		"booked":     false,
	}
}
