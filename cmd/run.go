package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	responseadapter "github.com/bnema/usergrid-go/internal/adapters/render/response"
	"github.com/bnema/usergrid-go/internal/client"
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/spf13/cobra"
)

// callOptions tune how one command prints its envelope.
type callOptions struct {
	// secret hides the raw body and the token of grant responses.
	secret bool
}

type envelopeOutput struct {
	TransactionID int64  `json:"transaction_id"`
	State         string `json:"state"`
	Payload       any    `json:"payload,omitempty"`
	Error         string `json:"error,omitempty"`
	Raw           string `json:"raw,omitempty"`
}

// withSession opens the client of the selected profile and hands it to fn.
func (a *app) withSession(cmd *cobra.Command, flags *globalFlags, fn func(*session) error) error {
	s, err := a.openSession(cmd.Context(), flags.profile, flags.logging)
	if err != nil {
		return err
	}
	return fn(s)
}

// execute runs call the way the flags ask, prints the terminal envelope and
// returns it. A failed envelope is also returned as an error.
func (a *app) execute(cmd *cobra.Command, flags *globalFlags, name string, call *client.Call, opts callOptions) (domain.Response, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var final domain.Response
	if flags.async {
		resp, err := a.executeAsync(ctx, cmd, flags, name, call)
		if err != nil {
			return resp, err
		}
		final = resp
	} else {
		final = call.Do(ctx)
	}

	if err := a.writeResponse(cmd, flags, name, final, opts); err != nil {
		return final, err
	}
	if final.Failed() {
		return final, fmt.Errorf("%s: %w", name, final.Err)
	}
	return final, nil
}

func (a *app) executeAsync(ctx context.Context, cmd *cobra.Command, flags *globalFlags, name string, call *client.Call) (domain.Response, error) {
	done := make(chan domain.Response, 1)
	pending := call.Go(ctx, func(resp domain.Response) { done <- resp })
	if !pending.Pending() {
		return pending, nil
	}

	wait := func(ctx context.Context) (domain.Response, error) {
		return awaitEnvelope(ctx, pending, done, call.Cancel)
	}
	if flags.asJSON {
		return wait(ctx)
	}
	return runCallSpinner(ctx, cmd.ErrOrStderr(), name, pending, wait)
}

func (a *app) writeResponse(cmd *cobra.Command, flags *globalFlags, name string, resp domain.Response, opts callOptions) error {
	if opts.secret {
		resp = redactGrant(resp)
	}

	if flags.asJSON {
		out := envelopeOutput{
			TransactionID: int64(resp.TransactionID),
			State:         resp.State.String(),
			Payload:       resp.Payload,
			Error:         resp.ErrorMessage(),
			Raw:           resp.Raw(),
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	rendered, err := a.render(resp, responseadapter.RenderOptions{Operation: name, ShowRaw: flags.logging && !opts.secret})
	if err != nil {
		return fmt.Errorf("render response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// redactGrant drops what could leak a token from a login envelope.
func redactGrant(resp domain.Response) domain.Response {
	if api, ok := domain.PayloadAs[*domain.APIResponse](resp); ok && api != nil && api.AccessToken != "" {
		masked := *api
		masked.AccessToken = "[REDACTED]"
		resp.Payload = &masked
	}
	resp.RawBody = nil
	return resp
}

func parseJSONObject(raw, what string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", what, err)
	}
	if out == nil {
		return nil, fmt.Errorf("parse %s: expected a JSON object", what)
	}
	return out, nil
}
