package infra

import (
	"crypto/tls"
	"net/http"

	"github.com/cockroachdb/errors"
	elasticsearch "github.com/elastic/go-elasticsearch/v8"
)

func NewElasticsearchClient(config ElasticsearchConfig) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
		Username:  config.Username,
		Password:  config.Password,
		APIKey:    config.ApiKey,
	}
	if config.InsecureSkipTLS {
		cfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create elasticsearch client")
	}
	return client, nil
}
