// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicattest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&catalogSuite{})

type catalogSuite struct {
	stub *StubCatalog
}

func (s *catalogSuite) SetUpTest(c *check.C) {
	s.stub = NewStubCatalog("ingestor", "aoeuidhtns", "tok123")
}

func (s *catalogSuite) do(c *check.C, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		c.Assert(json.NewEncoder(&buf).Encode(body), check.IsNil)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	s.stub.ServeHTTP(resp, req)
	return resp
}

func (s *catalogSuite) TestLogin(c *check.C) {
	resp := s.do(c, "POST", "/api/v3/Users/login", "", map[string]string{
		"username": "ingestor", "password": "aoeuidhtns",
	})
	c.Check(resp.Code, check.Equals, http.StatusCreated)
	var body map[string]interface{}
	c.Assert(json.Unmarshal(resp.Body.Bytes(), &body), check.IsNil)
	c.Check(body["access_token"], check.Equals, "tok123")

	resp = s.do(c, "POST", "/api/v3/Users/login", "", map[string]string{
		"username": "ingestor", "password": "wrong",
	})
	c.Check(resp.Code, check.Equals, http.StatusUnauthorized)
}

func (s *catalogSuite) TestCreateAssignsPID(c *check.C) {
	resp := s.do(c, "POST", "/api/v3/Datasets", "tok123", map[string]interface{}{
		"datasetName": "run-042", "type": "raw",
	})
	c.Assert(resp.Code, check.Equals, http.StatusCreated)
	var body map[string]interface{}
	c.Assert(json.Unmarshal(resp.Body.Bytes(), &body), check.IsNil)
	c.Check(body["pid"], check.Equals, "20.500.12345/dataset-1")
	c.Check(body["datasetName"], check.Equals, "run-042")
}

func (s *catalogSuite) TestTokenEnforced(c *check.C) {
	resp := s.do(c, "POST", "/api/v3/Datasets", "", map[string]interface{}{})
	c.Check(resp.Code, check.Equals, http.StatusUnauthorized)
	resp = s.do(c, "GET", "/api/v3/Datasets", "forged", nil)
	c.Check(resp.Code, check.Equals, http.StatusUnauthorized)
}

func (s *catalogSuite) TestEscapedPIDRoute(c *check.C) {
	resp := s.do(c, "POST", "/api/v3/Datasets", "tok123", map[string]interface{}{
		"datasetName": "run-042",
	})
	c.Assert(resp.Code, check.Equals, http.StatusCreated)

	// the client escapes the slash inside the pid
	resp = s.do(c, "GET", "/api/v3/Datasets/20.500.12345%2Fdataset-1", "tok123", nil)
	c.Assert(resp.Code, check.Equals, http.StatusOK)
	var body map[string]interface{}
	c.Assert(json.Unmarshal(resp.Body.Bytes(), &body), check.IsNil)
	c.Check(body["pid"], check.Equals, "20.500.12345/dataset-1")

	resp = s.do(c, "GET", "/api/v3/Datasets/20.500.12345%2Fnope", "tok123", nil)
	c.Check(resp.Code, check.Equals, http.StatusNotFound)
}

func (s *catalogSuite) TestDatablocksRequireDataset(c *check.C) {
	resp := s.do(c, "POST", "/api/v3/Datasets/20.500.12345%2Fnope/origdatablocks", "tok123", map[string]interface{}{
		"size": 1,
	})
	c.Check(resp.Code, check.Equals, http.StatusNotFound)
}

var _ = check.Suite(&serverStubSuite{})

type serverStubSuite struct{}

func (s *serverStubSuite) TestServerStub(c *check.C) {
	stub := &ServerStub{
		Responses: map[string]StubResponse{
			"/api/v3/Samples": {201, `{"sampleId":"sample-xyz"}`},
		},
	}
	resp := httptest.NewRecorder()
	stub.ServeHTTP(resp, httptest.NewRequest("POST", "/api/v3/Samples", nil))
	c.Check(resp.Code, check.Equals, 201)
	c.Check(resp.Body.String(), check.Equals, `{"sampleId":"sample-xyz"}`)

	resp = httptest.NewRecorder()
	stub.ServeHTTP(resp, httptest.NewRequest("GET", "/api/v3/Unknown", nil))
	c.Check(resp.Code, check.Equals, 404)

	c.Check(stub.Requests(), check.HasLen, 2)
}
