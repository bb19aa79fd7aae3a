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

package directmail

import (
	"context"
	"fmt"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dm "github.com/alibabacloud-go/dm-20151123/v2/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"github.com/aliyun/credentials-go/credentials"

	"github.com/lapviet/lapstore/internal/email"
)

type Config struct {
	AccessKeyID     string `yaml:"accessKeyID"`
	AccessKeySecret string `yaml:"accessKeySecret"`
	Endpoint        string `yaml:"endpoint"`
	// AccountName 在DirectMail控制台配置的发信地址
	AccountName string `yaml:"accountName"`
}

// Service 阿里云DirectMail单发实现
type Service struct {
	client      *dm.Client
	accountName string
}

func NewService(cfg Config) (*Service, error) {
	cred, err := credentials.NewCredential(new(credentials.Config).
		SetType("access_key").
		SetAccessKeyId(cfg.AccessKeyID).
		SetAccessKeySecret(cfg.AccessKeySecret))
	if err != nil {
		return nil, fmt.Errorf("初始化DirectMail凭证失败: %w", err)
	}
	client, err := dm.NewClient(&openapi.Config{
		Credential: cred,
		Endpoint:   tea.String(cfg.Endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("初始化DirectMail客户端失败: %w", err)
	}
	return &Service{
		client:      client,
		accountName: cfg.AccountName,
	}, nil
}

var _ email.Service = (*Service)(nil)

func (svc *Service) Send(ctx context.Context, subject, to string, content []byte) error {
	req := &dm.SingleSendMailRequest{
		AccountName:    tea.String(svc.accountName),
		AddressType:    tea.Int32(1),
		ReplyToAddress: tea.Bool(false),
		ToAddress:      tea.String(to),
		Subject:        tea.String(subject),
		HtmlBody:       tea.String(string(content)),
	}
	_, err := svc.client.SingleSendMailWithOptions(req, &util.RuntimeOptions{})
	if err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}
