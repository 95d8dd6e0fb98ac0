package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
)

// NtfyProvider sends notifications via an ntfy server.
type NtfyProvider struct {
	url    string
	topic  string
	client *http.Client
}

// NewNtfy creates a new ntfy notification provider.
func NewNtfy(url, topic string) *NtfyProvider {
	return &NtfyProvider{
		url:    strings.TrimRight(url, "/"),
		topic:  topic,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *NtfyProvider) Name() string { return "ntfy" }

func (n *NtfyProvider) Send(ctx context.Context, ev model.AlertEvent) error {
	endpoint := fmt.Sprintf("%s/%s", n.url, n.topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(ntfyBody(ev)))
	if err != nil {
		return fmt.Errorf("ntfy: build request: %w", err)
	}

	req.Header.Set("Title", ntfyTitle(ev))
	req.Header.Set("Priority", severityToNtfyPriority(ev.Alert.Severity))
	req.Header.Set("Tags", ntfyTags(ev))

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("ntfy: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ntfy: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func ntfyTitle(ev model.AlertEvent) string {
	if ev.Kind == model.AlertStatusChanged {
		return fmt.Sprintf("%s: %s", ev.Alert.Status, ev.Alert.Title)
	}
	return ev.Alert.Title
}

func ntfyBody(ev model.AlertEvent) string {
	a := ev.Alert
	body := fmt.Sprintf("[%s/%s] %s", a.Service, a.Environment, a.Description)
	if a.Resolution != "" {
		body += "\nResolution: " + a.Resolution
	}
	return body
}

func severityToNtfyPriority(severity string) string {
	switch severity {
	case model.SeverityCritical:
		return "5"
	case model.SeverityHigh:
		return "4"
	case model.SeverityLow:
		return "2"
	default:
		return "3"
	}
}

func ntfyTags(ev model.AlertEvent) string {
	var tags []string
	switch ev.Alert.Severity {
	case model.SeverityCritical:
		tags = append(tags, "rotating_light")
	case model.SeverityHigh, model.SeverityMedium:
		tags = append(tags, "warning")
	case model.SeverityLow:
		tags = append(tags, "information_source")
	}
	if ev.Kind != "" {
		tags = append(tags, ev.Kind)
	}
	if ev.Alert.Status == model.AlertResolved {
		tags = append(tags, "white_check_mark")
	}
	return strings.Join(tags, ",")
}
