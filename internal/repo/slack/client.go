package slack

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ragingtiger/amznbot/internal/config"
	"github.com/ragingtiger/amznbot/pkg/util"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://slack.com/api"

// Error is a Web API answer with "ok": false.
type Error struct {
	Method string
	Code   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("slack: %s failed: %s", e.Method, e.Code)
}

type Client interface {
	PostMessage(ctx context.Context, channel, text string) error
}

type client struct {
	http  *resty.Client
	token string
}

func NewClient(conf *config.Config) Client {
	return NewClientWithBaseURL(conf, defaultBaseURL)
}

func NewClientWithBaseURL(conf *config.Config, baseURL string) Client {
	return &client{
		http:  util.NewRestyClient(30 * time.Second).SetBaseURL(baseURL),
		token: conf.Tokens.SlackAPIToken,
	}
}

func (c *client) PostMessage(ctx context.Context, channel, text string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetFormData(map[string]string{
			"channel": "#" + strings.TrimPrefix(channel, "#"),
			"text":    text,
			"as_user": "true",
		}).
		Post("/chat.postMessage")
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("slack: chat.postMessage returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	if !gjson.GetBytes(body, "ok").Bool() {
		code := gjson.GetBytes(body, "error").String()
		if code == "" {
			code = "unknown_error"
		}
		return &Error{Method: "chat.postMessage", Code: code}
	}
	return nil
}
