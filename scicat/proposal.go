// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"context"
	"net/http"
	"net/url"
)

// Proposal defines the purpose of an experiment and links it to a
// principal investigator and main proposer.
type Proposal struct {
	Ownable
	ProposalID            string `json:"proposalId"`
	PIEmail               string `json:"pi_email,omitempty"`
	PIFirstname           string `json:"pi_firstname,omitempty"`
	PILastname            string `json:"pi_lastname,omitempty"`
	Email                 string `json:"email"`
	Firstname             string `json:"firstname,omitempty"`
	Lastname              string `json:"lastname,omitempty"`
	Title                 string `json:"title,omitempty"`
	Abstract              string `json:"abstract,omitempty"`
	StartTime             string `json:"startTime,omitempty"`
	EndTime               string `json:"endTime,omitempty"`
	MeasurementPeriodList []Dict `json:"MeasurementPeriodList,omitempty"`
}

func (p Proposal) Validate() error {
	if err := p.Ownable.validate("Proposal"); err != nil {
		return err
	}
	if p.ProposalID == "" {
		return &ValidationError{Record: "Proposal", Field: "proposalId", Reason: "required"}
	}
	if p.Email == "" {
		return &ValidationError{Record: "Proposal", Field: "email", Reason: "required"}
	}
	return nil
}

// GetProposal retrieves one proposal by id.
func (c *Client) GetProposal(ctx context.Context, proposalID string) (*Proposal, error) {
	if proposalID == "" {
		return nil, &ValidationError{Record: "Proposal", Field: "proposalId", Reason: "required"}
	}
	var p Proposal
	err := c.RequestAndDecode(ctx, &p, http.MethodGet, "Proposals/"+url.PathEscape(proposalID), nil, nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
