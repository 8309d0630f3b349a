package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/transaction"
)

// deviceRequest addresses the device entity of this installation, resolved
// when the call runs.
func (c *Client) deviceRequest(name string, method domain.Method, body any) *Call {
	var encoded []byte
	if body != nil {
		var err error
		if encoded, err = json.Marshal(body); err != nil {
			return c.invalid(name, domain.InvalidInput("encode %s body: %v", name, err))
		}
	}

	return c.call(name, asEntity, func(ctx context.Context, token string) (transaction.Request, error) {
		deviceID, err := c.deviceID(ctx)
		if err != nil {
			return transaction.Request{}, err
		}
		return transaction.Request{URL: c.routes.Device(deviceID), Method: method, Body: encoded, Token: token}, nil
	})
}

// SetRemoteStorage replaces the data kept for this device on the server.
func (c *Client) SetRemoteStorage(data map[string]any) *Call {
	if data == nil {
		return c.invalid("set remote storage", domain.InvalidInput("storage data is required"))
	}
	return c.deviceRequest("set remote storage", domain.MethodPut, data)
}

func (c *Client) GetRemoteStorage() *Call {
	return c.deviceRequest("get remote storage", domain.MethodGet, nil)
}

// SetDevicePushToken registers the push token of this device with notifier.
func (c *Client) SetDevicePushToken(token []byte, notifier string) *Call {
	if len(token) == 0 {
		return c.invalid("set device push token", domain.InvalidInput("push token is required"))
	}
	if err := required(notifier, "notifier"); err != nil {
		return c.invalid("set device push token", err)
	}
	body := map[string]any{"type": "device"}
	body[fmt.Sprintf("%s.notifier.id", notifier)] = hex.EncodeToString(token)
	return c.deviceRequest("set device push token", domain.MethodPut, body)
}

// PushAlert sends an alert notification to the users, groups or devices
// under path through notifier.
func (c *Client) PushAlert(message, sound, path, notifier string) *Call {
	if err := firstError(required(message, "message"), required(path, "path"), required(notifier, "notifier")); err != nil {
		return c.invalid("push alert", err)
	}

	aps := map[string]any{"alert": message}
	if sound != "" {
		aps["sound"] = sound
	}
	body := map[string]any{
		"payloads": map[string]any{notifier: map[string]any{"aps": aps}},
	}
	return c.jsonRequest("push alert", asEntity, domain.MethodPost, c.routes.Notifications(path), body)
}
