package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SecretStorage persiste segredos renovados em tempo de execução (ex.: token do Meta)
type SecretStorage interface {
	AddOrUpdateSecret(ctx context.Context, secretName, secretContent string) error
}

type addOrUpdateSecretRequest struct {
	Content string `json:"content"`
}

// RenderClient grava secret files no serviço configurado do Render
type RenderClient struct {
	APIKey     string
	ServiceID  string
	BaseURL    string
	HTTPClient *http.Client
}

// NewRenderClient retorna nil quando o Render não está configurado
func NewRenderClient(config *Config) *RenderClient {
	if config.Render.APIKey == "" || config.Render.ServiceID == "" {
		return nil
	}

	return &RenderClient{
		APIKey:     config.Render.APIKey,
		ServiceID:  config.Render.ServiceID,
		BaseURL:    "https://api.render.com/v1",
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *RenderClient) AddOrUpdateSecret(ctx context.Context, secretName, secretContent string) error {
	url := fmt.Sprintf("%s/services/%s/secret-files/%s", c.BaseURL, c.ServiceID, secretName)

	jsonData, err := json.Marshal(addOrUpdateSecretRequest{Content: secretContent})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("config: error add or update secret %s: %s", secretName, body)
	}
	return nil
}
