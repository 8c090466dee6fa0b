// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package scicattest provides stand-in SciCat backends for tests.
package scicattest

import (
	"net/http"
	"sync"
)

// StubResponse struct with response status and body
type StubResponse struct {
	Status int
	Body   string
}

// ServerStub with response map of path and StubResponse
// Ex: /api/v3/Datasets = scicattest.StubResponse{200, string(`{}`)}
type ServerStub struct {
	Responses map[string]StubResponse

	mtx      sync.Mutex
	requests []*http.Request
}

func (stub *ServerStub) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	stub.mtx.Lock()
	stub.requests = append(stub.requests, req)
	stub.mtx.Unlock()

	pathResponse, ok := stub.Responses[req.URL.Path]
	if !ok {
		resp.WriteHeader(http.StatusNotFound)
		resp.Write([]byte(`{"error":{"statusCode":404,"message":"no stub response configured"}}`))
		return
	}
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(pathResponse.Status)
	resp.Write([]byte(pathResponse.Body))
}

// Requests returns the requests handled so far.
func (stub *ServerStub) Requests() []*http.Request {
	stub.mtx.Lock()
	defer stub.mtx.Unlock()
	return append([]*http.Request(nil), stub.requests...)
}
