package client

import (
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/endpoint"
)

func queuePath(path string) (string, error) {
	normalized := endpoint.NormalizeQueuePath(path)
	if normalized == "" {
		return "", domain.InvalidInput("queue path is required")
	}
	return normalized, nil
}

// PostMessage publishes message to the queue at path.
func (c *Client) PostMessage(path string, message map[string]any) *Call {
	queue, err := queuePath(path)
	if err != nil {
		return c.invalid("post message", err)
	}
	if len(message) == 0 {
		return c.invalid("post message", domain.InvalidInput("message is required"))
	}
	return c.jsonRequest("post message", asAPIResponse, domain.MethodPost, c.routes.Queue(queue), message)
}

// GetMessages reads the queue at path. The payload is []domain.Message.
func (c *Client) GetMessages(path string, q endpoint.QueueQuery) *Call {
	queue, err := queuePath(path)
	if err != nil {
		return c.invalid("get messages", err)
	}
	return c.request("get messages", asMessages, domain.MethodGet, c.routes.QueueRead(queue, q), nil)
}

func (c *Client) AddSubscriber(path, subscriberPath string) *Call {
	return c.subscriber("add subscriber", domain.MethodPost, path, subscriberPath)
}

func (c *Client) RemoveSubscriber(path, subscriberPath string) *Call {
	return c.subscriber("remove subscriber", domain.MethodDelete, path, subscriberPath)
}

func (c *Client) subscriber(name string, method domain.Method, path, subscriberPath string) *Call {
	queue, err := queuePath(path)
	if err != nil {
		return c.invalid(name, err)
	}
	subscriber, err := queuePath(subscriberPath)
	if err != nil {
		return c.invalid(name, domain.InvalidInput("subscriber path is required"))
	}
	return c.request(name, asAPIResponse, method, c.routes.QueueSubscriber(queue, subscriber), nil)
}
