// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches a store: share
// grants, credentials and note patches.
//
// Validators are injected into services and handlers as [Validator] and may
// be restricted to a subset of fields by name.
package validators

import "context"

// Validator validates the provided input, optionally restricted to the
// named fields.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
