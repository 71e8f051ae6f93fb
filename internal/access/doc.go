// Package access decides what a principal may do with a note.
//
// Every function is pure: the answer depends only on the note's ownership,
// visibility and share list and on the principal's id and email. A nil
// principal fails closed and may only read public notes.
package access
