// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import "github.com/google/uuid"

// NewPID returns a fresh client-chosen identifier, prefixed with the
// facility's pid prefix when one is given (e.g. "20.500.12345").
func NewPID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "/" + id
}

// NewSampleID returns a fresh client-chosen sampleId.
func NewSampleID() string {
	return uuid.NewString()
}
