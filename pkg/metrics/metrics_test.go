// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordOperation("copy", 10*time.Millisecond, true)
	m.RecordOperation("copy", time.Millisecond, false)
	m.RecordOperation("mkdir", time.Millisecond, true)
	m.RecordBatch("copy", 3, 1, 2048)
	m.RecordConfirmation("confirmed")
	m.SetTrashItems(2)
	m.RecordHistoryStep("undo", true)

	assert.InDelta(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("copy", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("copy", "failure")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.batchItems.WithLabelValues("copy", "success")), 0)
	assert.InDelta(t, 2048, testutil.ToFloat64(m.batchBytes.WithLabelValues("copy")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.trashItems), 0)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `filepane_operations_total{kind="mkdir",result="success"} 1`))
	assert.Contains(t, body, "filepane_confirmations_total")
}

func TestSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
