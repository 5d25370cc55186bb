package client

import (
	"context"
	"time"

	"huddle/pkg/logger"
)

// Client holds the external connections a service shares across its
// repositories. Mongo is mandatory; other connections are attached lazily by
// the binary that needs them.
type Client struct {
	Mongo *MongoClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, uri string, connTimeout time.Duration) {
	c.Mongo = NewMongoClient(log, uri, connTimeout)
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo == nil {
		return
	}
	if err := c.Mongo.Client.Disconnect(context.Background()); err != nil {
		log.Error("Failed to disconnect MongoDB client", "error", err)
		return
	}
	log.Info("MongoDB client disconnected")
}
