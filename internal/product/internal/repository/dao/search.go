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

package dao

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/olivere/elastic/v7"
)

const ProductIndexName = "product_index"

// ProductDoc 商品在ES中的文档结构
type ProductDoc struct {
	Id       int64  `json:"id"`
	SN       string `json:"sn"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Attrs    string `json:"attrs"`
	Status   uint8  `json:"status"`
	Utime    int64  `json:"utime"`
}

type SearchDAO interface {
	SearchProducts(ctx context.Context, keywords string, offset, limit int) ([]ProductDoc, error)
	InputProduct(ctx context.Context, doc ProductDoc) error
}

type ProductElasticDAO struct {
	client *elastic.Client
	index  string
}

func NewProductElasticDAO(client *elastic.Client) SearchDAO {
	return &ProductElasticDAO{
		client: client,
		index:  ProductIndexName,
	}
}

func (d *ProductElasticDAO) SearchProducts(ctx context.Context, keywords string, offset, limit int) ([]ProductDoc, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewMultiMatchQuery(keywords, "name", "desc", "brand", "attrs"),
		elastic.NewTermQuery("status", 2),
	)
	resp, err := d.client.Search(d.index).
		From(offset).
		Size(limit).
		Query(query).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]ProductDoc, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var doc ProductDoc
		if err = json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, err
		}
		res = append(res, doc)
	}
	return res, nil
}

func (d *ProductElasticDAO) InputProduct(ctx context.Context, doc ProductDoc) error {
	_, err := d.client.Index().
		Index(d.index).
		Id(strconv.FormatInt(doc.Id, 10)).
		BodyJson(doc).
		Do(ctx)
	return err
}
