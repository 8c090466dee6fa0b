// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads client configuration files. Files are YAML;
// JSON works too, being a subset of YAML.
package config

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// LoadFile loads configuration from the file given by configPath and
// decodes it into cfg.
func LoadFile(cfg interface{}, configPath string) error {
	buf, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	err = Load(cfg, buf)
	if err != nil {
		return fmt.Errorf("error decoding config %q: %v", configPath, err)
	}
	return nil
}

// Load decodes buf into cfg.
func Load(cfg interface{}, buf []byte) error {
	return yaml.Unmarshal(buf, cfg)
}
