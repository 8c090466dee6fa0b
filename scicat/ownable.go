// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import "encoding/json"

// Dict is a helper type so we don't have to write out
// 'map[string]interface{}' every time.
type Dict map[string]interface{}

// RecordMeta carries the bookkeeping fields the catalog stamps on
// most records.
type RecordMeta struct {
	CreatedBy string `json:"createdBy,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Ownable is the access-control fragment embedded in most catalog
// records. OwnerGroup is required; AccessGroups must be present but
// may be empty.
type Ownable struct {
	RecordMeta
	OwnerGroup      string   `json:"ownerGroup"`
	AccessGroups    []string `json:"accessGroups"`
	InstrumentGroup string   `json:"instrumentGroup,omitempty"`
}

func (o Ownable) validate(record string) error {
	if o.OwnerGroup == "" {
		return &ValidationError{Record: record, Field: "ownerGroup", Reason: "required"}
	}
	if o.AccessGroups == nil {
		return &ValidationError{Record: record, Field: "accessGroups", Reason: "must be present (an empty list is allowed)"}
	}
	return nil
}

// validateFreeform checks that a free-form metadata value can be
// represented in the transport format. Its internal shape is not
// constrained.
func validateFreeform(record, field string, value Dict) error {
	if value == nil {
		return nil
	}
	if _, err := json.Marshal(value); err != nil {
		return &ValidationError{Record: record, Field: field, Reason: err.Error()}
	}
	return nil
}
