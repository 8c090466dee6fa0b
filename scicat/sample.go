// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"context"
	"net/http"
	"net/url"

	"github.com/scicatproject/scicat-go/ctxlog"
)

// Sample describes a physical or reference sample that raw datasets
// can link to. SampleID may be chosen by the client (see NewSampleID)
// or left empty for the server to assign.
type Sample struct {
	Ownable
	SampleID              string `json:"sampleId,omitempty"`
	Owner                 string `json:"owner,omitempty"`
	Description           string `json:"description,omitempty"`
	SampleCharacteristics Dict   `json:"sampleCharacteristics,omitempty"`
	IsPublished           bool   `json:"isPublished"`
}

func (s Sample) Validate() error {
	if err := s.Ownable.validate("Sample"); err != nil {
		return err
	}
	return validateFreeform("Sample", "sampleCharacteristics", s.SampleCharacteristics)
}

// CreateSample uploads a sample record and returns it with the
// server-assigned (or echoed client-chosen) sampleId.
func (c *Client) CreateSample(ctx context.Context, s Sample) (*Sample, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var created Sample
	err := c.RequestAndDecode(ctx, &created, http.MethodPost, "Samples", nil, s)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithField("sampleId", created.SampleID).Info("sample created")
	return &created, nil
}

// GetSample retrieves one sample by id.
func (c *Client) GetSample(ctx context.Context, sampleID string) (*Sample, error) {
	if sampleID == "" {
		return nil, &ValidationError{Record: "Sample", Field: "sampleId", Reason: "required"}
	}
	var s Sample
	err := c.RequestAndDecode(ctx, &s, http.MethodGet, "Samples/"+url.PathEscape(sampleID), nil, nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
