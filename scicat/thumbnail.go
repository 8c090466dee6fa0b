// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const base64Marker = ";base64,"

// EncodeThumbnail reads the file at path and returns its content as a
// data URI suitable for Attachment.Thumbnail. imageType overrides the
// media subtype; when empty it is derived from the file extension,
// falling back to "jpg".
func EncodeThumbnail(path, imageType string) (string, error) {
	if imageType == "" {
		imageType = strings.TrimPrefix(filepath.Ext(path), ".")
		if imageType == "" {
			imageType = "jpg"
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:image/" + imageType + base64Marker + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeThumbnail reverses EncodeThumbnail. It accepts either a bare
// base64 string or a data URI.
func DecodeThumbnail(thumbnail string) ([]byte, error) {
	payload := thumbnail
	if strings.HasPrefix(thumbnail, "data:") {
		i := strings.Index(thumbnail, base64Marker)
		if i < 0 {
			return nil, fmt.Errorf("data URI without a base64 payload")
		}
		payload = thumbnail[i+len(base64Marker):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 content: %v", err)
	}
	return data, nil
}
