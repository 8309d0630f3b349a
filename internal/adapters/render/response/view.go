package response

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultMaxRawBytes = 2048

type RenderOptions struct {
	// Operation labels the title line, e.g. "get entities".
	Operation string
	// ShowRaw prints the raw body of successful envelopes too. Failures
	// always show it when one was received.
	ShowRaw     bool
	MaxRawBytes int
}

func renderView(resp domain.Response, opts RenderOptions, s styles) string {
	title := "Usergrid response"
	if opts.Operation != "" {
		title = fmt.Sprintf("Usergrid response: %s", opts.Operation)
	}

	lines := []string{
		s.title.Render(title),
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.header.Render(fmt.Sprintf("transaction: %s", transactionLabel(resp.TransactionID))),
			"  ",
			stateStyle(resp.State, s).Render(resp.State.String()),
		),
	}

	switch {
	case resp.Pending():
		lines = append(lines, s.empty.Render("Waiting for the server."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	case resp.Failed():
		lines = append(lines, s.section.Render(s.failure.Render("error: "+resp.ErrorMessage())))
	default:
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, payloadLines(resp.Payload, s)...)))
	}

	if resp.HasRawBody() && len(resp.RawBody) > 0 && (resp.Failed() || opts.ShowRaw) {
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			s.key.Render("raw:"),
			s.raw.Render(truncate(resp.Raw(), maxRaw(opts))),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func transactionLabel(id domain.TransactionID) string {
	if id == domain.SyncTransactionID {
		return "sync"
	}
	return fmt.Sprintf("%d", id)
}

func stateStyle(state domain.TransactionState, s styles) lipgloss.Style {
	switch state {
	case domain.TransactionSuccess:
		return s.success
	case domain.TransactionFailure:
		return s.failure
	default:
		return s.pending
	}
}

func payloadLines(payload any, s styles) []string {
	switch typed := payload.(type) {
	case nil:
		return []string{s.empty.Render("No payload.")}
	case domain.Entity:
		if typed == nil {
			return []string{s.empty.Render("No entity returned.")}
		}
		return entityBlock(typed, s)
	case []domain.Entity:
		return entityList(typed, s)
	case map[string]domain.Entity:
		return entitiesByKey(typed, s)
	case *domain.User:
		return userLines(typed, s)
	case []domain.Message:
		return messageLines(typed, s)
	case *domain.APIResponse:
		return apiResponseLines(typed, s)
	default:
		return []string{s.value.Render(fmt.Sprintf("%v", typed))}
	}
}

func entityList(entities []domain.Entity, s styles) []string {
	lines := []string{s.header.Render(fmt.Sprintf("entities: %d", len(entities)))}
	if len(entities) == 0 {
		return append(lines, s.empty.Render("No entities."))
	}
	for _, entity := range entities {
		lines = append(lines, entityRow(entity, s))
	}
	return lines
}

func entityRow(entity domain.Entity, s styles) string {
	label := entity.Name()
	if label == "" {
		label = entity.String("path")
	}
	row := s.entity.Render(fmt.Sprintf("%s %s", entity.Type(), entity.UUID()))
	if label != "" {
		row += " " + s.value.Render(label)
	}
	return row
}

func entityBlock(entity domain.Entity, s styles) []string {
	lines := []string{entityRow(entity, s)}
	for _, key := range sortedKeys(entity) {
		switch key {
		case "uuid", "type", "name":
			continue
		}
		lines = append(lines, keyValue(key, formatValue(entity[key]), s))
	}
	return lines
}

func entitiesByKey(entities map[string]domain.Entity, s styles) []string {
	keys := make([]string, 0, len(entities))
	for key := range entities {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := []string{s.header.Render(fmt.Sprintf("entities: %d", len(entities)))}
	if len(keys) == 0 {
		return append(lines, s.empty.Render("No entities."))
	}
	for _, key := range keys {
		lines = append(lines, keyValue(key, entities[key].UUID(), s))
	}
	return lines
}

func userLines(user *domain.User, s styles) []string {
	if user == nil {
		return []string{s.empty.Render("No user.")}
	}
	lines := []string{s.entity.Render(fmt.Sprintf("user %s", user.UUID))}
	lines = append(lines, keyValue("username", user.Username, s))
	if user.Name != "" {
		lines = append(lines, keyValue("name", user.Name, s))
	}
	if user.Email != "" {
		lines = append(lines, keyValue("email", user.Email, s))
	}
	return lines
}

func messageLines(messages []domain.Message, s styles) []string {
	lines := []string{s.header.Render(fmt.Sprintf("messages: %d", len(messages)))}
	if len(messages) == 0 {
		return append(lines, s.empty.Render("Queue is empty."))
	}
	for _, message := range messages {
		line := s.entity.Render(message.UUID)
		if message.Category != "" {
			line += " " + s.value.Render(message.Category)
		}
		lines = append(lines, line)
	}
	return lines
}

func apiResponseLines(resp *domain.APIResponse, s styles) []string {
	if resp == nil {
		return []string{s.empty.Render("No payload.")}
	}

	var lines []string
	for _, field := range []struct{ key, value string }{
		{"action", resp.Action},
		{"path", resp.Path},
		{"queue", resp.Queue},
		{"last", resp.Last},
		{"cursor", resp.Cursor},
	} {
		if field.value != "" {
			lines = append(lines, keyValue(field.key, field.value, s))
		}
	}
	if resp.AccessToken != "" {
		lines = append(lines, keyValue("access_token", "[REDACTED]", s))
	}
	if len(resp.Entities) > 0 {
		lines = append(lines, entityList(resp.Entities, s)...)
	}
	if len(resp.Messages) > 0 {
		lines = append(lines, messageLines(resp.Messages, s)...)
	}
	if len(lines) == 0 {
		return []string{s.empty.Render("Empty response.")}
	}
	return lines
}

func keyValue(key, value string, s styles) string {
	return s.key.Render(key+":") + " " + s.value.Render(value)
}

func sortedKeys(entity domain.Entity) []string {
	keys := make([]string, 0, len(entity))
	for key := range entity {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func formatValue(value any) string {
	if text, ok := value.(string); ok {
		return text
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

func maxRaw(opts RenderOptions) int {
	if opts.MaxRawBytes > 0 {
		return opts.MaxRawBytes
	}
	return defaultMaxRawBytes
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return strings.TrimRight(text[:limit], "\n") + "…"
}
