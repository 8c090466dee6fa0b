// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/scicatproject/scicat-go/ctxlog"
)

// Datablock is a file manifest attached to an already-created
// dataset, typically describing an archived (packed) copy.
type Datablock struct {
	Ownable
	ID           string     `json:"id,omitempty"`
	ArchiveID    string     `json:"archiveId,omitempty"`
	Size         int64      `json:"size,omitempty"`
	PackedSize   int64      `json:"packedSize,omitempty"`
	ChkAlg       string     `json:"chkAlg,omitempty"`
	Version      string     `json:"version"`
	DataFileList []DataFile `json:"dataFileList"`
	DatasetID    string     `json:"datasetId"`
}

// Validate checks the required fields. Size is advisory: it is not
// required to match FileSum, and no check is made here.
func (b Datablock) Validate() error {
	if err := b.Ownable.validate("Datablock"); err != nil {
		return err
	}
	if b.DatasetID == "" {
		return &ValidationError{Record: "Datablock", Field: "datasetId", Reason: "required"}
	}
	if b.Version == "" {
		return &ValidationError{Record: "Datablock", Field: "version", Reason: "required"}
	}
	if len(b.DataFileList) == 0 {
		return &ValidationError{Record: "Datablock", Field: "dataFileList", Reason: "at least one file is required"}
	}
	for _, f := range b.DataFileList {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FileSum returns the total size of the files in the block, for
// callers that want to compare it against Size.
func (b Datablock) FileSum() (sum int64) {
	for _, f := range b.DataFileList {
		sum += f.Size
	}
	return
}

// OrigDatablock is the file manifest of a dataset's original
// (pre-processing) files. Same referential contract as Datablock,
// minus the version.
type OrigDatablock struct {
	Ownable
	ID           string     `json:"id,omitempty"`
	Size         int64      `json:"size"`
	ChkAlg       string     `json:"chkAlg,omitempty"`
	DataFileList []DataFile `json:"dataFileList"`
	DatasetID    string     `json:"datasetId"`
}

func (b OrigDatablock) Validate() error {
	if err := b.Ownable.validate("OrigDatablock"); err != nil {
		return err
	}
	if b.DatasetID == "" {
		return &ValidationError{Record: "OrigDatablock", Field: "datasetId", Reason: "required"}
	}
	if b.Size < 0 {
		return &ValidationError{Record: "OrigDatablock", Field: "size", Reason: "must not be negative"}
	}
	if len(b.DataFileList) == 0 {
		return &ValidationError{Record: "OrigDatablock", Field: "dataFileList", Reason: "at least one file is required"}
	}
	for _, f := range b.DataFileList {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FileSum returns the total size of the files in the block.
func (b OrigDatablock) FileSum() (sum int64) {
	for _, f := range b.DataFileList {
		sum += f.Size
	}
	return
}

// CreateDatablock registers a datablock under the referenced dataset,
// which must already exist on the catalog.
func (c *Client) CreateDatablock(ctx context.Context, db Datablock) (*Datablock, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}
	var created Datablock
	path := "Datasets/" + url.PathEscape(db.DatasetID) + "/datablocks"
	err := c.RequestAndDecode(ctx, &created, http.MethodPost, path, nil, db)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithFields(logrus.Fields{
		"datasetId": db.DatasetID,
		"files":     len(db.DataFileList),
		"size":      humanize.IBytes(uint64(db.FileSum())),
	}).Info("datablock created")
	return &created, nil
}

// CreateOrigDatablock registers the original file manifest under the
// referenced dataset.
func (c *Client) CreateOrigDatablock(ctx context.Context, db OrigDatablock) (*OrigDatablock, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}
	var created OrigDatablock
	path := "Datasets/" + url.PathEscape(db.DatasetID) + "/origdatablocks"
	err := c.RequestAndDecode(ctx, &created, http.MethodPost, path, nil, db)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithFields(logrus.Fields{
		"datasetId": db.DatasetID,
		"files":     len(db.DataFileList),
		"size":      humanize.IBytes(uint64(db.FileSum())),
	}).Info("origdatablock created")
	return &created, nil
}

// ListOrigDatablocks retrieves the original datablocks of the dataset
// with the given pid.
func (c *Client) ListOrigDatablocks(ctx context.Context, pid string) ([]OrigDatablock, error) {
	if pid == "" {
		return nil, &ValidationError{Record: "OrigDatablock", Field: "datasetId", Reason: "required"}
	}
	var items []OrigDatablock
	path := "Datasets/" + url.PathEscape(pid) + "/origdatablocks"
	err := c.RequestAndDecode(ctx, &items, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return items, nil
}
