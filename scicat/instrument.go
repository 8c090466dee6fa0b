// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Instrument identifies a beamline or detector; most of its
// description lives in CustomMetadata.
type Instrument struct {
	RecordMeta
	PID            string `json:"pid,omitempty"`
	Name           string `json:"name"`
	UniqueName     string `json:"uniqueName"`
	CustomMetadata Dict   `json:"customMetadata,omitempty"`
}

func (i Instrument) Validate() error {
	if i.Name == "" {
		return &ValidationError{Record: "Instrument", Field: "name", Reason: "required"}
	}
	if i.UniqueName == "" {
		return &ValidationError{Record: "Instrument", Field: "uniqueName", Reason: "required"}
	}
	return validateFreeform("Instrument", "customMetadata", i.CustomMetadata)
}

// GetInstrument retrieves one instrument by pid.
func (c *Client) GetInstrument(ctx context.Context, pid string) (*Instrument, error) {
	if pid == "" {
		return nil, &ValidationError{Record: "Instrument", Field: "pid", Reason: "required"}
	}
	var in Instrument
	err := c.RequestAndDecode(ctx, &in, http.MethodGet, "Instruments/"+url.PathEscape(pid), nil, nil)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// GetInstrumentByName retrieves the first instrument whose name
// matches the given name.
func (c *Client) GetInstrumentByName(ctx context.Context, name string) (*Instrument, error) {
	if name == "" {
		return nil, &ValidationError{Record: "Instrument", Field: "name", Reason: "required"}
	}
	filter, err := json.Marshal(Dict{"where": Dict{"name": Dict{"like": name}}})
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("filter", string(filter))
	var in Instrument
	err = c.RequestAndDecode(ctx, &in, http.MethodGet, "Instruments/findOne", query, nil)
	if err != nil {
		return nil, err
	}
	return &in, nil
}
