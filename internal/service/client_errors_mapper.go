// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

// serverReply is a transport error class paired with the message the
// server handler wrote into the body.
type serverReply struct {
	class   error
	message string
}

var serverReplies = map[serverReply]error{
	{adapter.ErrBadRequest, app.MsgInvalidDataProvided}:       ErrInvalidDataProvided,
	{adapter.ErrBadRequest, app.MsgEmptyPatch}:                ErrInvalidDataProvided,
	{adapter.ErrBadRequest, app.MsgVersionIsNotSpecified}:     ErrVersionIsNotSpecified,
	{adapter.ErrUnauthorized, app.MsgInvalidLoginPassword}:    ErrWrongPassword,
	{adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid}: ErrTokenIsExpiredOrInvalid,
	{adapter.ErrUnauthorized, app.MsgAuthenticationRequired}:  ErrNotSignedIn,
	{adapter.ErrConflict, app.MsgEmailAlreadyExists}:          store.ErrLoginAlreadyExists,
	{adapter.ErrBadGateway, app.MsgRegistrationFailed}:        ErrRegisterOnServer,
	{adapter.ErrBadGateway, app.MsgLoginFailed}:               ErrLoginOnServer,
	{adapter.ErrInternalServerError, app.MsgLoginFailed}:      ErrTokenCreationFailed,
}

var replyClasses = []error{
	adapter.ErrBadRequest,
	adapter.ErrUnauthorized,
	adapter.ErrConflict,
	adapter.ErrBadGateway,
	adapter.ErrInternalServerError,
}

// mapAdapterError turns a server reply into the service error the server
// handler started from. Unknown replies are returned unchanged.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	message := replyMessage(err)
	for _, class := range replyClasses {
		if !errors.Is(err, class) {
			continue
		}
		if mapped, ok := serverReplies[serverReply{class, message}]; ok {
			return mapped
		}
		break
	}

	return err
}

// replyMessage returns the body part of "<class>: <body>".
func replyMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
