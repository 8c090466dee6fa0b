// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&attachmentSuite{})

type attachmentSuite struct{}

func validAttachment() Attachment {
	return Attachment{
		Ownable: Ownable{
			OwnerGroup:   "ingestor",
			AccessGroups: []string{},
		},
		DatasetID: "20.500.12345/raw-1",
		Thumbnail: base64.StdEncoding.EncodeToString([]byte("not really a jpeg")),
		Caption:   "detector preview",
	}
}

func (s *attachmentSuite) TestValidate(c *check.C) {
	c.Check(validAttachment().Validate(), check.IsNil)

	a := validAttachment()
	a.Caption = ""
	c.Check(fieldError(c, a.Validate()).Field, check.Equals, "caption")

	a = validAttachment()
	a.Thumbnail = "%%% this is not base64 %%%"
	c.Check(fieldError(c, a.Validate()).Field, check.Equals, "thumbnail")

	// no thumbnail at all is fine
	a = validAttachment()
	a.Thumbnail = ""
	c.Check(a.Validate(), check.IsNil)
}

func (s *attachmentSuite) TestEncodeThumbnailRoundTrip(c *check.C) {
	content := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x01}
	path := filepath.Join(c.MkDir(), "preview.png")
	c.Assert(os.WriteFile(path, content, 0644), check.IsNil)

	thumb, err := EncodeThumbnail(path, "")
	c.Assert(err, check.IsNil)
	c.Check(strings.HasPrefix(thumb, "data:image/png;base64,"), check.Equals, true)

	back, err := DecodeThumbnail(thumb)
	c.Assert(err, check.IsNil)
	c.Check(back, check.DeepEquals, content)

	// the data URI form passes attachment validation
	a := validAttachment()
	a.Thumbnail = thumb
	c.Check(a.Validate(), check.IsNil)
}

func (s *attachmentSuite) TestEncodeThumbnailExplicitType(c *check.C) {
	path := filepath.Join(c.MkDir(), "preview")
	c.Assert(os.WriteFile(path, []byte("x"), 0644), check.IsNil)
	thumb, err := EncodeThumbnail(path, "jpeg")
	c.Assert(err, check.IsNil)
	c.Check(strings.HasPrefix(thumb, "data:image/jpeg;base64,"), check.Equals, true)
}

func (s *attachmentSuite) TestDecodeThumbnailBadURI(c *check.C) {
	_, err := DecodeThumbnail("data:image/png,rawbytes")
	c.Check(err, check.ErrorMatches, `data URI without a base64 payload`)
}
