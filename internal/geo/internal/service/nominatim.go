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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lapviet/lapstore/internal/geo/internal/domain"
)

var ErrNoMatch = errors.New("地址没有匹配结果")

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim的使用条款要求带上可联系到的UA
const userAgent = "lapstore/1.0 (support@lapviet.vn)"

//go:generate mockgen -source=./nominatim.go -package=geomocks -destination=../../mocks/geo.mock.go -typed Service
type Service interface {
	// Forward 把自由文本地址解析成经纬度, 只取最优的一个结果
	Forward(ctx context.Context, query string) (domain.Location, error)
}

type nominatimService struct {
	baseURL string
	client  *http.Client
}

func NewService(baseURL string) Service {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &nominatimService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (s *nominatimService) Forward(ctx context.Context, query string) (domain.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "vn")

	reqURL := fmt.Sprintf("%s/search?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Location{}, fmt.Errorf("构造地理编码请求失败: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Location{}, fmt.Errorf("请求地理编码服务失败: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return domain.Location{}, fmt.Errorf("地理编码服务返回异常状态码: %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Location{}, fmt.Errorf("解析地理编码响应失败: %w", err)
	}
	if len(results) == 0 {
		return domain.Location{}, ErrNoMatch
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("解析纬度失败: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("解析经度失败: %w", err)
	}
	return domain.Location{
		Lat:         lat,
		Lng:         lng,
		DisplayName: results[0].DisplayName,
	}, nil
}
