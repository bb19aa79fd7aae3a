// Copyright 2025 lapviet
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sequencenumber

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		generator *Generator
		wantSN    string
		wantErr   error
	}{
		{
			name: "固定时间戳和随机尾部",
			generator: NewGeneratorWith(
				func(_ time.Time) int64 { return 1700000000000 },
				func() string { return "abcdefgh" },
			),
			wantSN: "ORD-" + strings.ToUpper(strconv.FormatInt(1700000000000, 36)) + "-ABCD",
		},
		{
			name: "随机尾部过短",
			generator: NewGeneratorWith(
				func(_ time.Time) int64 { return 1700000000000 },
				func() string { return "ab" },
			),
			wantErr: assert.AnError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sn, err := tc.generator.Generate()
			if tc.wantErr != nil {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSN, sn)
		})
	}
}

func TestGenerator_GenerateFormat(t *testing.T) {
	t.Parallel()
	sn, err := NewGenerator().Generate()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sn, "ORD-"))
	parts := strings.Split(sn, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 4)
}
