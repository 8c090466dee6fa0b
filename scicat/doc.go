// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package scicat provides data records and an HTTP client for a
// SciCat metadata catalog server.
//
// Records (Dataset, Datablock, Sample, Attachment, ...) mirror the
// catalog's schema and validate themselves before submission. The
// Client owns a base URL and a session token, performs the login
// exchange, and exposes one method per entity action.
package scicat
