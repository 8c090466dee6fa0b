// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"encoding/json"
	"os"
	"path/filepath"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&datablockSuite{})

type datablockSuite struct{}

func validDatablock() Datablock {
	return Datablock{
		Ownable: Ownable{
			OwnerGroup:   "ingestor",
			AccessGroups: []string{"slac"},
		},
		Size:    3000,
		Version: "1.0.0",
		DataFileList: []DataFile{
			{Path: "run-042/data.h5", Size: 2000},
			{Path: "run-042/metadata.json", Size: 1000},
		},
		DatasetID: "20.500.12345/raw-1",
	}
}

func (s *datablockSuite) TestDataFileRequiredFields(c *check.C) {
	f := DataFile{Path: "a/b.h5", Size: 10}
	c.Check(f.Validate(), check.IsNil)

	f.Path = ""
	c.Check(fieldError(c, f.Validate()).Field, check.Equals, "path")

	f = DataFile{Path: "a/b.h5", Size: -1}
	c.Check(fieldError(c, f.Validate()).Field, check.Equals, "size")
}

func (s *datablockSuite) TestDatablockRequiredFields(c *check.C) {
	c.Check(validDatablock().Validate(), check.IsNil)

	db := validDatablock()
	db.DatasetID = ""
	c.Check(fieldError(c, db.Validate()).Field, check.Equals, "datasetId")

	db = validDatablock()
	db.Version = ""
	c.Check(fieldError(c, db.Validate()).Field, check.Equals, "version")

	db = validDatablock()
	db.DataFileList = nil
	c.Check(fieldError(c, db.Validate()).Field, check.Equals, "dataFileList")

	db = validDatablock()
	db.DataFileList[0].Path = ""
	c.Check(fieldError(c, db.Validate()).Record, check.Equals, "DataFile")
}

func (s *datablockSuite) TestSizeMismatchIsAdvisory(c *check.C) {
	db := validDatablock()
	db.Size = 999999
	c.Check(db.Validate(), check.IsNil)
	c.Check(db.FileSum(), check.Equals, int64(3000))
	c.Check(db.Size == db.FileSum(), check.Equals, false)
}

func (s *datablockSuite) TestOrigDatablock(c *check.C) {
	ob := OrigDatablock{
		Ownable: Ownable{
			OwnerGroup:   "ingestor",
			AccessGroups: []string{},
		},
		Size:         2000,
		DataFileList: []DataFile{{Path: "run-042/data.h5", Size: 2000}},
		DatasetID:    "20.500.12345/raw-1",
	}
	c.Check(ob.Validate(), check.IsNil)
	c.Check(ob.FileSum(), check.Equals, int64(2000))

	ob.DatasetID = ""
	c.Check(fieldError(c, ob.Validate()).Field, check.Equals, "datasetId")

	ob.DatasetID = "20.500.12345/raw-1"
	ob.DataFileList = nil
	c.Check(fieldError(c, ob.Validate()).Field, check.Equals, "dataFileList")
}

func (s *datablockSuite) TestDatablockRoundTrip(c *check.C) {
	orig := validDatablock()
	buf, err := json.Marshal(orig)
	c.Assert(err, check.IsNil)
	var back Datablock
	c.Assert(json.Unmarshal(buf, &back), check.IsNil)
	c.Check(back, check.DeepEquals, orig)
}

func (s *datablockSuite) TestNewDataFile(c *check.C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "data.bin")
	content := []byte("hello world")
	c.Assert(os.WriteFile(path, content, 0644), check.IsNil)

	df, err := NewDataFile(path)
	c.Assert(err, check.IsNil)
	c.Check(df.Path, check.Equals, path)
	c.Check(df.Size, check.Equals, int64(len(content)))
	c.Check(df.Time, check.Not(check.Equals), "")
	c.Check(df.Chk, check.Equals, "5eb63bbbe01eeed093cb22bb8f5acdc3")
	c.Check(df.Validate(), check.IsNil)
}

func (s *datablockSuite) TestFileChecksumMissingFile(c *check.C) {
	_, err := FileChecksum(filepath.Join(c.MkDir(), "nope"))
	c.Check(err, check.NotNil)
}
