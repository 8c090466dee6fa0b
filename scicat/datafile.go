// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"time"
)

// DataFile is one file reference inside a data block. Path is
// relative to the owning dataset's sourceFolder. A DataFile has no
// ownership fields of its own; its lifetime is tied to its block.
type DataFile struct {
	RecordMeta
	Path string `json:"path"`
	Size int64  `json:"size"`
	Time string `json:"time,omitempty"`
	Chk  string `json:"chk,omitempty"`
	UID  string `json:"uid,omitempty"`
	GID  string `json:"gid,omitempty"`
	Perm string `json:"perm,omitempty"`
}

func (f DataFile) Validate() error {
	if f.Path == "" {
		return &ValidationError{Record: "DataFile", Field: "path", Reason: "required"}
	}
	if f.Size < 0 {
		return &ValidationError{Record: "DataFile", Field: "size", Reason: "must not be negative"}
	}
	return nil
}

// NewDataFile stats the file at path and returns a DataFile with
// size, modification time, and MD5 checksum filled in. Path is
// recorded as given; callers normally pass a path relative to the
// dataset's sourceFolder.
func NewDataFile(path string) (DataFile, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return DataFile{}, err
	}
	df := DataFile{
		Path: path,
		Size: fi.Size(),
		Time: fi.ModTime().UTC().Format(time.RFC3339),
	}
	if fi.Mode().IsRegular() {
		df.Chk, err = FileChecksum(path)
		if err != nil {
			return DataFile{}, err
		}
	}
	return df, nil
}

// FileChecksum returns the hex MD5 digest of the file at path. MD5 is
// what catalog ingestors conventionally record in DataFile.Chk.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
