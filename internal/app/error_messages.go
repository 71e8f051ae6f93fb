// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the note
// server handlers and by the client when it decodes server responses.
//
// All Msg* constants are the plain-text bodies written alongside non-2xx
// statuses. The client matches on them to restore typed errors, so the
// wording must stay stable.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the email/password pair does
	// not match an account.
	MsgInvalidLoginPassword = "invalid email/password"

	// MsgInternalServerError is returned for failures the client cannot fix.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token cannot be
	// verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgAuthenticationRequired is returned by write endpoints called
	// without a bearer token.
	MsgAuthenticationRequired = "authentication required"

	// MsgRegistrationFailed is returned when an account could not be created
	// for a reason other than a duplicate email.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when a session token could not be issued.
	MsgLoginFailed = "login failed"

	// MsgEmailAlreadyExists is returned when the registration email is taken.
	MsgEmailAlreadyExists = "email already exists"

	// MsgNoteNotFound is returned when no note has the requested id.
	MsgNoteNotFound = "note not found"

	// MsgInvalidQuery is returned when a note query names an unknown field.
	MsgInvalidQuery = "invalid note query"

	// MsgEmptyPatch is returned for a PATCH request that changes nothing.
	MsgEmptyPatch = "empty note patch"

	// MsgObjectNotFound is returned when a stored file does not exist.
	MsgObjectNotFound = "file not found"

	// MsgVersionIsNotSpecified is returned by the version endpoint when the
	// build carries no version string.
	MsgVersionIsNotSpecified = "version is not specified"
)
