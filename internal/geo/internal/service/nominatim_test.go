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

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapviet/lapstore/internal/geo/internal/domain"
)

func TestNominatimService_Forward(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		respBody string
		wantErr  error
		want     domain.Location
	}{
		{
			name:     "解析成功",
			respBody: `[{"lat":"10.7769","lon":"106.7009","display_name":"Quận 1, Hồ Chí Minh, Việt Nam"}]`,
			want: domain.Location{
				Lat:         10.7769,
				Lng:         106.7009,
				DisplayName: "Quận 1, Hồ Chí Minh, Việt Nam",
			},
		},
		{
			name:     "没有匹配结果",
			respBody: `[]`,
			wantErr:  ErrNoMatch,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "1", r.URL.Query().Get("limit"))
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.NotEmpty(t, r.Header.Get("User-Agent"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.respBody))
			}))
			defer srv.Close()

			svc := NewService(srv.URL)
			loc, err := svc.Forward(context.Background(), "135 Nguyễn Huệ, Quận 1")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, loc)
		})
	}
}
