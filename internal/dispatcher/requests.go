package dispatcher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"go-guardian/internal/database"
	"go-guardian/internal/logging"
)

// RequestExecutor issues raw Discord REST calls through the client pool.
// Every call is bounded by a timeout; failure is returned to the worker,
// never propagated into the event pipeline.
type RequestExecutor struct {
	pool        *HTTPPool
	rateLimiter *RateLimitMonitor
	token       string
	baseURL     string
}

func NewRequestExecutor(pool *HTTPPool, rateLimiter *RateLimitMonitor, token, baseURL string) *RequestExecutor {
	return &RequestExecutor{
		pool:        pool,
		rateLimiter: rateLimiter,
		token:       token,
		baseURL:     baseURL,
	}
}

func (e *RequestExecutor) do(method, url, route, guildID, reason string, body []byte) error {
	if !e.rateLimiter.CanExecute(route, guildID) {
		return fmt.Errorf("rate limited: %s", route)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bot "+e.token)
	if reason != "" {
		req.Header.Set("X-Audit-Log-Reason", reason)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.SetBody(body)
	}

	client := e.pool.GetClient()
	if err := client.DoTimeout(req, resp, 2*time.Second); err != nil {
		return err
	}

	e.rateLimiter.UpdateFromResponse(resp, route, guildID)

	status := resp.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}
	return fmt.Errorf("%s failed: status %d", route, status)
}

// ExecuteBan permanently bans a user.
func (e *RequestExecutor) ExecuteBan(guildID, userID, reason string) error {
	url := fmt.Sprintf("%s/guilds/%s/bans/%s", e.baseURL, guildID, userID)
	body, _ := json.Marshal(map[string]interface{}{"delete_message_seconds": 0})

	if err := e.do(fasthttp.MethodPut, url, "ban", guildID, reason, body); err != nil {
		return err
	}

	if db := database.GetDB(); db != nil {
		if err := db.AddPunishedUser(guildID, userID, reason, "guardian", false); err != nil {
			logging.Warn("dispatcher: failed to record punished user %s: %v", userID, err)
		}
	}
	return nil
}

// ExecuteUnban lifts a ban, used by booster protection.
func (e *RequestExecutor) ExecuteUnban(guildID, userID, reason string) error {
	url := fmt.Sprintf("%s/guilds/%s/bans/%s", e.baseURL, guildID, userID)
	return e.do(fasthttp.MethodDelete, url, "unban", guildID, reason, nil)
}

// ExecuteKick removes a member, used by the bot-addition guard.
func (e *RequestExecutor) ExecuteKick(guildID, userID, reason string) error {
	url := fmt.Sprintf("%s/guilds/%s/members/%s", e.baseURL, guildID, userID)
	return e.do(fasthttp.MethodDelete, url, "kick", guildID, reason, nil)
}

// ExecuteVanityRestore rewrites the guild's vanity invite code. discordgo has
// no wrapper for this endpoint.
func (e *RequestExecutor) ExecuteVanityRestore(guildID, code, reason string) error {
	url := fmt.Sprintf("%s/guilds/%s/vanity-url", e.baseURL, guildID)
	body, _ := json.Marshal(map[string]string{"code": code})
	return e.do(fasthttp.MethodPatch, url, "vanity", guildID, reason, body)
}
