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

// PublishedData is a DOI-registered publication record. It is
// maintained by the catalog; this client only reads it.
type PublishedData struct {
	DOI             string   `json:"doi"`
	Affiliation     string   `json:"affiliation,omitempty"`
	Creator         []string `json:"creator,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	PublicationYear int      `json:"publicationYear,omitempty"`
	Title           string   `json:"title,omitempty"`
	URL             string   `json:"url,omitempty"`
	Abstract        string   `json:"abstract,omitempty"`
	DataDescription string   `json:"dataDescription,omitempty"`
	ResourceType    string   `json:"resourceType,omitempty"`
	NumberOfFiles   int      `json:"numberOfFiles,omitempty"`
	SizeOfArchive   int64    `json:"sizeOfArchive,omitempty"`
	PIDArray        []string `json:"pidArray,omitempty"`
	Authors         []string `json:"authors,omitempty"`
	RegisteredTime  string   `json:"registeredTime,omitempty"`
	Status          string   `json:"status,omitempty"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	CreatedBy       string   `json:"createdBy,omitempty"`
	UpdatedBy       string   `json:"updatedBy,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// ListPublishedData retrieves published-data records matching the
// given where filter. A nil filter retrieves everything.
func (c *Client) ListPublishedData(ctx context.Context, where Dict) ([]PublishedData, error) {
	query := url.Values{}
	if len(where) > 0 {
		buf, err := json.Marshal(Dict{"where": where})
		if err != nil {
			return nil, &ValidationError{Record: "PublishedData", Field: "filter", Reason: err.Error()}
		}
		query.Set("filter", string(buf))
	}
	var items []PublishedData
	err := c.RequestAndDecode(ctx, &items, http.MethodGet, "PublishedData", query, nil)
	if err != nil {
		return nil, err
	}
	return items, nil
}
