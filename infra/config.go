package infra

import "fmt"

type PgConfig struct {
	Hostname         string
	Port             string
	User             string
	Password         string
	Database         string
	ConnectionString string
}

func (config PgConfig) GetConnectionString() string {
	if config.ConnectionString != "" {
		return config.ConnectionString
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s database=%s sslmode=disable",
		config.Hostname, config.Port, config.User, config.Password, config.Database)
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	ApiKey    string
	Index     string
	// InsecureSkipTLS disables certificate verification, for clusters running
	// with self-signed certificates.
	InsecureSkipTLS bool
}

type PagerDutyConfig struct {
	EnqueueUrl string
	RoutingKey string
}
