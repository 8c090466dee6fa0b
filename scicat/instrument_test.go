// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"encoding/json"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&instrumentSuite{})

type instrumentSuite struct{}

func validInstrument() Instrument {
	return Instrument{
		PID:        "inst-1",
		Name:       "TOMCAT",
		UniqueName: "PSI/SLS/TOMCAT",
		CustomMetadata: Dict{
			"beamline": "X02DA",
		},
	}
}

func (s *instrumentSuite) TestValidate(c *check.C) {
	c.Check(validInstrument().Validate(), check.IsNil)

	in := validInstrument()
	in.Name = ""
	c.Check(fieldError(c, in.Validate()).Field, check.Equals, "name")

	in = validInstrument()
	in.UniqueName = ""
	c.Check(fieldError(c, in.Validate()).Field, check.Equals, "uniqueName")

	// customMetadata is free-form
	in = validInstrument()
	in.CustomMetadata = nil
	c.Check(in.Validate(), check.IsNil)
}

func (s *instrumentSuite) TestRoundTrip(c *check.C) {
	orig := validInstrument()
	buf, err := json.Marshal(orig)
	c.Assert(err, check.IsNil)
	var back Instrument
	c.Assert(json.Unmarshal(buf, &back), check.IsNil)
	c.Check(back, check.DeepEquals, orig)
}
