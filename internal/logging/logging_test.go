// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	_ "github.com/aclements/go-statfit/estimate"
)

func TestSetupRaisesModuleLevels(t *testing.T) {
	assert.Equal(t, logging.WARNING, logging.GetLevel("estimate"))
	var buf bytes.Buffer
	SetupWriter(&buf, "debug", "test")
	assert.Equal(t, logging.DEBUG, logging.GetLevel("estimate"))
	logging.MustGetLogger("estimate").Debug("shown")
	assert.Contains(t, buf.String(), "estimate: shown")
}

func TestSetupWriter(t *testing.T) {
	var buf bytes.Buffer
	log := SetupWriter(&buf, "warning", "test")
	log.Info("hidden")
	log.Warning("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARNING  test: shown")

	// Other modules share the backend.
	logging.MustGetLogger("other").Error("also shown")
	assert.Contains(t, buf.String(), "other: also shown")

	buf.Reset()
	log = SetupWriter(&buf, "verbose", "test")
	log.Info("default level")
	log.Debug("hidden")
	assert.Contains(t, buf.String(), "default level")
	assert.NotContains(t, buf.String(), "hidden")
}
