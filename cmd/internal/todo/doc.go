// Package todo implements owner-scoped task lists.
//
// Every store operation takes the owner's account ID and only ever touches
// rows belonging to that owner. There is no cross-owner read or write path,
// so an authenticated caller cannot reach another account's tasks even with
// a guessed task ID.
package todo
