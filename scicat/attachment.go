// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/scicatproject/scicat-go/ctxlog"
)

// Attachment is a small binary, typically a thumbnail, associated
// with a dataset, proposal, or sample. Thumbnail holds the content as
// base64, optionally wrapped in a data URI (see EncodeThumbnail).
type Attachment struct {
	Ownable
	ID         string `json:"id,omitempty"`
	DatasetID  string `json:"datasetId,omitempty"`
	ProposalID string `json:"proposalId,omitempty"`
	SampleID   string `json:"sampleId,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Caption    string `json:"caption"`
}

func (a Attachment) Validate() error {
	if err := a.Ownable.validate("Attachment"); err != nil {
		return err
	}
	if a.Caption == "" {
		return &ValidationError{Record: "Attachment", Field: "caption", Reason: "required"}
	}
	if a.Thumbnail != "" {
		if _, err := DecodeThumbnail(a.Thumbnail); err != nil {
			return &ValidationError{Record: "Attachment", Field: "thumbnail", Reason: err.Error()}
		}
	}
	return nil
}

// CreateAttachment uploads an attachment under its dataset, which
// must already exist on the catalog.
func (c *Client) CreateAttachment(ctx context.Context, a Attachment) (*Attachment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.DatasetID == "" {
		return nil, &ValidationError{Record: "Attachment", Field: "datasetId", Reason: "required"}
	}
	var created Attachment
	path := "Datasets/" + url.PathEscape(a.DatasetID) + "/attachments"
	err := c.RequestAndDecode(ctx, &created, http.MethodPost, path, nil, a)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithFields(logrus.Fields{
		"datasetId": a.DatasetID,
		"caption":   a.Caption,
	}).Info("attachment created")
	return &created, nil
}
