// Package state holds the most recent load of the watched resource.
//
// Reload actions run their fetch off the host loop and report back through
// Store.Update, while the UI reads Store.Snapshot. The Store is the one
// piece of framewatch shared between goroutines, so it is mutex-protected and
// hands out copies.
//
// Every reload carries a sequence number. A slow response for an old reload
// can land after a newer one; Update drops it so the display never goes
// backwards. Failures keep the previous body visible and count consecutive
// errors for the offline indicator.
package state
