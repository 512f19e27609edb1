// Package database wraps the gocql driver behind a small connection
// type so repositories can be tested against a fake session.
package database

import (
	"time"

	"github.com/gocql/gocql"

	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

// Sessioner is the subset of gocql.Session the repositories use.
type Sessioner interface {
	Query(string, ...interface{}) *gocql.Query
	ExecuteBatch(*gocql.Batch) error
	Close()
}

type Config struct {
	Hosts       []string
	Keyspace    string
	Timeout     time.Duration
	Retries     int
	ConnectWait time.Duration
}

func NewConfig(host, port string) *Config {
	return &Config{
		Hosts:       []string{host + ":" + port},
		Keyspace:    "marketplace",
		Timeout:     30 * time.Second,
		Retries:     5,
		ConnectWait: 10 * time.Second,
	}
}

type Connection struct {
	session Sessioner
	config  *Config
	logger  logging.Logger
}

func NewConnection(config *Config, logger logging.Logger) (*Connection, error) {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Timeout = config.Timeout
	cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: config.Retries}
	cluster.ConnectTimeout = config.ConnectWait
	cluster.Consistency = gocql.Quorum

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}

	return &Connection{
		session: session,
		config:  config,
		logger:  logger,
	}, nil
}

func (c *Connection) Session() Sessioner {
	return c.session
}

func (c *Connection) Close() {
	if c.session != nil {
		c.session.Close()
	}
}
