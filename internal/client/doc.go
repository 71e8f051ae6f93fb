// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the note-keeper command-line client.
//
// Every command builds an [App] from the client configuration, restores the
// saved session and runs one operation against the note repository, the
// auth session or the AI service. The watch command keeps the process alive
// and shows the live note browser.
package client
