// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/scicatproject/scicat-go/ctxlog"
)

// DatasetType distinguishes raw acquisitions from derived data
// products. The tag is closed: the catalog recognizes no other
// values.
type DatasetType string

const (
	DatasetTypeRaw     DatasetType = "raw"
	DatasetTypeDerived DatasetType = "derived"
)

// Technique is one entry in a dataset's techniques list.
type Technique struct {
	PID  string `json:"pid"`
	Name string `json:"name"`
}

// Relationship links a dataset to another dataset.
type Relationship struct {
	PID          string `json:"pid"`
	Relationship string `json:"relationship"`
}

// DatasetLifecycle describes the archiving and publication state of a
// dataset. All fields are maintained by the backend.
type DatasetLifecycle struct {
	Archivable             string `json:"archivable,omitempty"`
	ArchiveRetentionTime   string `json:"archiveRetentionTime,omitempty"`
	ArchiveReturnMessage   Dict   `json:"archiveReturnMessage,omitempty"`
	ArchiveStatusMessage   string `json:"archiveStatusMessage,omitempty"`
	DateOfDiskPurging      string `json:"dateOfDiskPurging,omitempty"`
	DateOfPublishing       string `json:"dateOfPublishing,omitempty"`
	ExportedTo             string `json:"exportedTo,omitempty"`
	IsOnCentralDisk        string `json:"isOnCentralDisk,omitempty"`
	Publishable            string `json:"publishable,omitempty"`
	PublishedOn            string `json:"publishedOn,omitempty"`
	Retrievable            string `json:"retrievable,omitempty"`
	RetrieveReturnMessage  Dict   `json:"retrieveReturnMessage,omitempty"`
	RetrieveStatusMessage  string `json:"retrieveStatusMessage,omitempty"`
	RetrieveIntegrityCheck string `json:"retrieveIntegrityCheck,omitempty"`
	StorageLocation        string `json:"storageLocation,omitempty"`
}

// DatasetCommon holds the fields shared by every dataset flavor.
type DatasetCommon struct {
	Ownable
	PID                   string            `json:"pid,omitempty"`
	Classification        string            `json:"classification,omitempty"`
	Comment               string            `json:"comment,omitempty"`
	ContactEmail          string            `json:"contactEmail"`
	CreationTime          string            `json:"creationTime"`
	DatasetName           string            `json:"datasetName"`
	Lifecycle             *DatasetLifecycle `json:"datasetlifecycle,omitempty"`
	DataQualityMetrics    int               `json:"dataQualityMetrics,omitempty"`
	Description           string            `json:"description,omitempty"`
	History               []Dict            `json:"history,omitempty"`
	InstrumentID          string            `json:"instrumentId,omitempty"`
	Investigator          string            `json:"investigator,omitempty"`
	IsPublished           bool              `json:"isPublished"`
	JobLogData            string            `json:"jobLogData,omitempty"`
	JobParameters         Dict              `json:"jobParameters,omitempty"`
	Keywords              []string          `json:"keywords,omitempty"`
	License               string            `json:"license,omitempty"`
	NumberOfFiles         int               `json:"numberOfFiles,omitempty"`
	NumberOfFilesArchived int               `json:"numberOfFilesArchived,omitempty"`
	OrcidOfOwner          string            `json:"orcidOfOwner,omitempty"`
	OwnerEmail            string            `json:"ownerEmail,omitempty"`
	PackedSize            int64             `json:"packedSize,omitempty"`
	Relationships         []Relationship    `json:"relationships,omitempty"`
	RunNumber             string            `json:"runNumber,omitempty"`
	ScientificMetadata    Dict              `json:"scientificMetadata,omitempty"`
	SharedWith            []string          `json:"sharedWith,omitempty"`
	Size                  int64             `json:"size,omitempty"`
	SourceFolder          string            `json:"sourceFolder"`
	SourceFolderHost      string            `json:"sourceFolderHost,omitempty"`
	Techniques            []Technique       `json:"techniques,omitempty"`
	ValidationStatus      string            `json:"validationStatus,omitempty"`
	Version               string            `json:"version,omitempty"`
}

func (d DatasetCommon) validateCommon(record string) error {
	if err := d.Ownable.validate(record); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"contactEmail", d.ContactEmail},
		{"creationTime", d.CreationTime},
		{"datasetName", d.DatasetName},
		{"sourceFolder", d.SourceFolder},
	} {
		if f.value == "" {
			return &ValidationError{Record: record, Field: f.name, Reason: "required"}
		}
	}
	return validateFreeform(record, "scientificMetadata", d.ScientificMetadata)
}

// Dataset is the generic dataset flavor accepted by the plain
// Datasets endpoint, which dispatches on the type tag. It carries the
// plural linkage fields of the current backend schema.
type Dataset struct {
	DatasetCommon
	CreationLocation         string      `json:"creationLocation,omitempty"`
	DataFormat               string      `json:"dataFormat,omitempty"`
	EndTime                  string      `json:"endTime,omitempty"`
	InputDatasets            []string    `json:"inputDatasets,omitempty"`
	Owner                    string      `json:"owner,omitempty"`
	PrincipalInvestigators   []string    `json:"principalInvestigators,omitempty"`
	ProposalIDs              []string    `json:"proposalIds,omitempty"`
	SampleIDs                []string    `json:"sampleIds,omitempty"`
	ScientificMetadataSchema string      `json:"scientificMetadataSchema,omitempty"`
	Type                     DatasetType `json:"type"`
	UsedSoftware             []string    `json:"usedSoftware,omitempty"`
}

// Validate checks the common required fields plus the variant
// requirements selected by the type tag.
func (d Dataset) Validate() error {
	switch d.Type {
	case DatasetTypeRaw:
		if d.CreationLocation == "" {
			return &ValidationError{Record: "Dataset", Field: "creationLocation", Reason: "required for raw datasets"}
		}
		if d.Owner == "" {
			return &ValidationError{Record: "Dataset", Field: "owner", Reason: "required for raw datasets"}
		}
		if len(d.PrincipalInvestigators) == 0 {
			return &ValidationError{Record: "Dataset", Field: "principalInvestigators", Reason: "required for raw datasets"}
		}
	case DatasetTypeDerived:
		if d.Owner == "" {
			return &ValidationError{Record: "Dataset", Field: "owner", Reason: "required for derived datasets"}
		}
		if len(d.InputDatasets) == 0 {
			return &ValidationError{Record: "Dataset", Field: "inputDatasets", Reason: "required for derived datasets"}
		}
		if d.UsedSoftware == nil {
			return &ValidationError{Record: "Dataset", Field: "usedSoftware", Reason: "required for derived datasets"}
		}
	default:
		return &ValidationError{Record: "Dataset", Field: "type", Reason: fmt.Sprintf("unrecognized dataset type %q", string(d.Type))}
	}
	return d.validateCommon("Dataset")
}

// RawDataset is a dataset produced directly by an instrument.
type RawDataset struct {
	DatasetCommon
	CreationLocation      string      `json:"creationLocation"`
	DataFormat            string      `json:"dataFormat,omitempty"`
	EndTime               string      `json:"endTime,omitempty"`
	InputDatasets         []string    `json:"inputDatasets,omitempty"`
	Owner                 string      `json:"owner"`
	PrincipalInvestigator string      `json:"principalInvestigator"`
	ProposalID            string      `json:"proposalId,omitempty"`
	SampleID              string      `json:"sampleId,omitempty"`
	Type                  DatasetType `json:"type"`
	UsedSoftware          []string    `json:"usedSoftware,omitempty"`
}

func (d RawDataset) Validate() error {
	if d.Type != DatasetTypeRaw {
		return &ValidationError{Record: "RawDataset", Field: "type", Reason: fmt.Sprintf("must be %q, got %q", DatasetTypeRaw, string(d.Type))}
	}
	for _, f := range []struct{ name, value string }{
		{"creationLocation", d.CreationLocation},
		{"owner", d.Owner},
		{"principalInvestigator", d.PrincipalInvestigator},
	} {
		if f.value == "" {
			return &ValidationError{Record: "RawDataset", Field: f.name, Reason: "required"}
		}
	}
	return d.validateCommon("RawDataset")
}

// DerivedDataset is a dataset generated from one or more raw
// datasets.
type DerivedDataset struct {
	DatasetCommon
	InputDatasets []string    `json:"inputDatasets"`
	Owner         string      `json:"owner"`
	ProposalID    string      `json:"proposalId,omitempty"`
	Type          DatasetType `json:"type"`
	UsedSoftware  []string    `json:"usedSoftware"`
}

func (d DerivedDataset) Validate() error {
	if d.Type != DatasetTypeDerived {
		return &ValidationError{Record: "DerivedDataset", Field: "type", Reason: fmt.Sprintf("must be %q, got %q", DatasetTypeDerived, string(d.Type))}
	}
	if d.Owner == "" {
		return &ValidationError{Record: "DerivedDataset", Field: "owner", Reason: "required"}
	}
	if len(d.InputDatasets) == 0 {
		return &ValidationError{Record: "DerivedDataset", Field: "inputDatasets", Reason: "at least one input dataset reference is required"}
	}
	if d.UsedSoftware == nil {
		return &ValidationError{Record: "DerivedDataset", Field: "usedSoftware", Reason: "must be present (an empty list is allowed)"}
	}
	return d.validateCommon("DerivedDataset")
}

// CreateDataset uploads ds through the generic Datasets endpoint and
// returns the stored record, including the server-assigned pid.
func (c *Client) CreateDataset(ctx context.Context, ds Dataset) (*Dataset, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	var created Dataset
	err := c.RequestAndDecode(ctx, &created, http.MethodPost, "Datasets", nil, ds)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithFields(logrus.Fields{
		"pid":  created.PID,
		"type": created.Type,
	}).Info("dataset created")
	return &created, nil
}

// CreateRawDataset uploads a raw dataset through the raw-specific
// endpoint.
func (c *Client) CreateRawDataset(ctx context.Context, ds RawDataset) (*RawDataset, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	var created RawDataset
	err := c.RequestAndDecode(ctx, &created, http.MethodPost, "RawDatasets", nil, ds)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithField("pid", created.PID).Info("raw dataset created")
	return &created, nil
}

// CreateDerivedDataset uploads a derived dataset through the
// derived-specific endpoint.
func (c *Client) CreateDerivedDataset(ctx context.Context, ds DerivedDataset) (*DerivedDataset, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	var created DerivedDataset
	err := c.RequestAndDecode(ctx, &created, http.MethodPost, "DerivedDatasets", nil, ds)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithField("pid", created.PID).Info("derived dataset created")
	return &created, nil
}

// ReplaceRawDataset creates a raw dataset or replaces the existing
// one with the same pid, via the legacy replaceOrCreate endpoint.
func (c *Client) ReplaceRawDataset(ctx context.Context, ds RawDataset) (*RawDataset, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	var stored RawDataset
	err := c.RequestAndDecode(ctx, &stored, http.MethodPost, "RawDataSets/replaceOrCreate", nil, ds)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ReplaceDerivedDataset creates a derived dataset or replaces the
// existing one with the same pid, via the legacy replaceOrCreate
// endpoint.
func (c *Client) ReplaceDerivedDataset(ctx context.Context, ds DerivedDataset) (*DerivedDataset, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	var stored DerivedDataset
	err := c.RequestAndDecode(ctx, &stored, http.MethodPost, "DerivedDataSets/replaceOrCreate", nil, ds)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateDataset patches the dataset with the given pid. Only the
// fields present in fields are changed.
func (c *Client) UpdateDataset(ctx context.Context, pid string, fields Dict) (*Dataset, error) {
	if pid == "" {
		return nil, &ValidationError{Record: "Dataset", Field: "pid", Reason: "required"}
	}
	var updated Dataset
	err := c.RequestAndDecode(ctx, &updated, http.MethodPatch, "Datasets/"+url.PathEscape(pid), nil, fields)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).WithField("pid", pid).Info("dataset updated")
	return &updated, nil
}

// GetDataset retrieves one dataset by pid.
func (c *Client) GetDataset(ctx context.Context, pid string) (*Dataset, error) {
	if pid == "" {
		return nil, &ValidationError{Record: "Dataset", Field: "pid", Reason: "required"}
	}
	var ds Dataset
	err := c.RequestAndDecode(ctx, &ds, http.MethodGet, "Datasets/"+url.PathEscape(pid), nil, nil)
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// ListDatasets retrieves datasets matching the given where filter.
// A nil filter retrieves everything the token can see.
func (c *Client) ListDatasets(ctx context.Context, where Dict) ([]Dataset, error) {
	query := url.Values{}
	if len(where) > 0 {
		buf, err := json.Marshal(Dict{"where": where})
		if err != nil {
			return nil, &ValidationError{Record: "Dataset", Field: "filter", Reason: err.Error()}
		}
		query.Set("filter", string(buf))
	}
	var items []Dataset
	err := c.RequestAndDecode(ctx, &items, http.MethodGet, "Datasets", query, nil)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindDatasets queries the catalog's fullquery mechanism, which
// supports paging and full-text search. To search full text, pass
// fields like {"text": "copper"}.
func (c *Client) FindDatasets(ctx context.Context, fields Dict, skip, limit int) ([]Dataset, error) {
	if fields == nil {
		fields = Dict{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, &ValidationError{Record: "Dataset", Field: "fields", Reason: err.Error()}
	}
	limitsJSON, err := json.Marshal(Dict{"skip": skip, "limit": limit, "order": "creationTime:desc"})
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("fields", string(fieldsJSON))
	query.Set("limits", string(limitsJSON))
	var items []Dataset
	err = c.RequestAndDecode(ctx, &items, http.MethodGet, "Datasets/fullquery", query, nil)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteDataset removes the dataset with the given pid.
func (c *Client) DeleteDataset(ctx context.Context, pid string) error {
	if pid == "" {
		return &ValidationError{Record: "Dataset", Field: "pid", Reason: "required"}
	}
	err := c.RequestAndDecode(ctx, nil, http.MethodDelete, "Datasets/"+url.PathEscape(pid), nil, nil)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).WithField("pid", pid).Info("dataset deleted")
	return nil
}
