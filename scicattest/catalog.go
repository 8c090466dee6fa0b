// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicattest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// StubCatalog is an in-memory stand-in for a SciCat backend. It
// implements the login exchange and the create/read endpoints the
// client uses, assigning pids, so client code can be exercised end to
// end against an httptest.Server.
type StubCatalog struct {
	// Accepted credentials and the token issued for them.
	Username string
	Password string
	Token    string

	// PIDPrefix is prepended to assigned identifiers.
	PIDPrefix string

	router *mux.Router

	mtx      sync.Mutex
	nextID   int
	datasets map[string]map[string]interface{}
	blocks   map[string][]map[string]interface{}
	samples  map[string]map[string]interface{}
}

// NewStubCatalog returns a StubCatalog that accepts the given
// credentials and issues the given token.
func NewStubCatalog(username, password, token string) *StubCatalog {
	s := &StubCatalog{
		Username:  username,
		Password:  password,
		Token:     token,
		PIDPrefix: "20.500.12345",
		datasets:  map[string]map[string]interface{}{},
		blocks:    map[string][]map[string]interface{}{},
		samples:   map[string]map[string]interface{}{},
	}
	r := mux.NewRouter()
	// Pids contain slashes and arrive percent-encoded; match the
	// encoded form so {pid} captures the whole identifier.
	r.UseEncodedPath()
	api := r.PathPrefix("/api/v3").Subrouter()
	api.HandleFunc("/Users/login", s.login).Methods("POST")
	api.HandleFunc("/Users/{id}", s.getUser).Methods("GET")
	api.HandleFunc("/Datasets", s.createDataset).Methods("POST")
	api.HandleFunc("/RawDatasets", s.createDataset).Methods("POST")
	api.HandleFunc("/DerivedDatasets", s.createDataset).Methods("POST")
	api.HandleFunc("/Datasets", s.listDatasets).Methods("GET")
	api.HandleFunc("/Datasets/{pid}", s.getDataset).Methods("GET")
	api.HandleFunc("/Datasets/{pid}/datablocks", s.createDatablock).Methods("POST")
	api.HandleFunc("/Datasets/{pid}/origdatablocks", s.createDatablock).Methods("POST")
	api.HandleFunc("/Datasets/{pid}/origdatablocks", s.listDatablocks).Methods("GET")
	api.HandleFunc("/Datasets/{pid}/attachments", s.createAttachment).Methods("POST")
	api.HandleFunc("/Samples", s.createSample).Methods("POST")
	s.router = r
	return s
}

func (s *StubCatalog) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

func (s *StubCatalog) assignID(kind string) string {
	s.nextID++
	return fmt.Sprintf("%s/%s-%d", s.PIDPrefix, kind, s.nextID)
}

func (s *StubCatalog) authorized(req *http.Request) bool {
	return req.Header.Get("Authorization") == "Bearer "+s.Token
}

// pidVar returns the decoded {pid} route variable. With
// UseEncodedPath the captured value is still percent-encoded.
func pidVar(req *http.Request) string {
	v := mux.Vars(req)["pid"]
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"statusCode": status,
			"message":    message,
		},
	})
}

func (s *StubCatalog) login(w http.ResponseWriter, req *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if creds.Username != s.Username || creds.Password != s.Password {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"access_token": s.Token,
		"id":           s.Token,
		"userId":       "stub-user",
	})
}

func (s *StubCatalog) getUser(w http.ResponseWriter, req *http.Request) {
	if !s.authorized(req) {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	id, _ := url.PathUnescape(mux.Vars(req)["id"])
	if id != "stub-user" {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       id,
		"username": s.Username,
		"email":    s.Username + "@example.org",
	})
}

// decodeBody reads a JSON object, enforcing the bearer token first.
func (s *StubCatalog) decodeBody(w http.ResponseWriter, req *http.Request) (map[string]interface{}, bool) {
	if !s.authorized(req) {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return nil, false
	}
	var body map[string]interface{}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return body, true
}

func (s *StubCatalog) createDataset(w http.ResponseWriter, req *http.Request) {
	body, ok := s.decodeBody(w, req)
	if !ok {
		return
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	pid, _ := body["pid"].(string)
	if pid == "" {
		pid = s.assignID("dataset")
		body["pid"] = pid
	}
	s.datasets[pid] = body
	writeJSON(w, http.StatusCreated, body)
}

func (s *StubCatalog) getDataset(w http.ResponseWriter, req *http.Request) {
	if !s.authorized(req) {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	ds, ok := s.datasets[pidVar(req)]
	if !ok {
		writeError(w, http.StatusNotFound, "dataset not found")
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (s *StubCatalog) listDatasets(w http.ResponseWriter, req *http.Request) {
	if !s.authorized(req) {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	items := []map[string]interface{}{}
	for _, ds := range s.datasets {
		items = append(items, ds)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *StubCatalog) createDatablock(w http.ResponseWriter, req *http.Request) {
	body, ok := s.decodeBody(w, req)
	if !ok {
		return
	}
	pid := pidVar(req)
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.datasets[pid]; !ok {
		writeError(w, http.StatusNotFound, "dataset not found")
		return
	}
	kind := "datablock"
	if strings.HasSuffix(req.URL.Path, "origdatablocks") {
		kind = "origdatablock"
	}
	body["id"] = s.assignID(kind)
	s.blocks[pid] = append(s.blocks[pid], body)
	writeJSON(w, http.StatusCreated, body)
}

func (s *StubCatalog) listDatablocks(w http.ResponseWriter, req *http.Request) {
	if !s.authorized(req) {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	items := s.blocks[pidVar(req)]
	if items == nil {
		items = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *StubCatalog) createAttachment(w http.ResponseWriter, req *http.Request) {
	body, ok := s.decodeBody(w, req)
	if !ok {
		return
	}
	pid := pidVar(req)
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.datasets[pid]; !ok {
		writeError(w, http.StatusNotFound, "dataset not found")
		return
	}
	body["id"] = s.assignID("attachment")
	writeJSON(w, http.StatusCreated, body)
}

func (s *StubCatalog) createSample(w http.ResponseWriter, req *http.Request) {
	body, ok := s.decodeBody(w, req)
	if !ok {
		return
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()
	id, _ := body["sampleId"].(string)
	if id == "" {
		id = s.assignID("sample")
		body["sampleId"] = id
	}
	s.samples[id] = body
	writeJSON(w, http.StatusCreated, body)
}
