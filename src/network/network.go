package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"rsi-tracker/src/helpers"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/models"
)

// -----------------------------------------------------------------------------

type AsyncNetworkManager struct {
	Config      *models.MConfig
	Client      *http.Client
	ProbeClient *http.Client
	Logger      *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncNetworkManager(cfg *models.MConfig, log *logger.Logger) *AsyncNetworkManager {
	return &AsyncNetworkManager{
		Config: cfg,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
		// The reachability probe carries its own short timeout so a hung
		// probe never eats the data-fetch budget.
		ProbeClient: &http.Client{
			Timeout: time.Duration(cfg.Network.ReachabilityTimeout) * time.Second,
		},
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Get performs a GET request with retries and exponential backoff.
func (nm *AsyncNetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	reqUrl.RawQuery = q.Encode()

	finalUrl := reqUrl.String()

	maxRetries := nm.Config.Network.MaxRetries
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(i*i) * time.Second): // Exponential backoff
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalUrl, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", nm.userAgent())

		resp, err := nm.Client.Do(req)
		if err != nil {
			lastErr = err
			nm.Logger.Info("Request failed (attempt %d/%d): %v", i+1, maxRetries+1, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d for %s", resp.StatusCode, finalUrl)
			nm.Logger.Info("Request returned status %d (attempt %d/%d)", resp.StatusCode, i+1, maxRetries+1)
			continue
		}

		return body, nil
	}

	return nil, &helpers.NetworkError{TrackerError: helpers.TrackerError{
		Message: fmt.Sprintf("GET %s failed after %d attempts", urlStr, maxRetries+1),
		Cause:   lastErr,
	}}
}

// -----------------------------------------------------------------------------

// IsReachable issues a lightweight HEAD probe against the configured
// reachability URL. Any response counts as reachable; only transport-level
// failure or probe timeout reports offline.
func (nm *AsyncNetworkManager) IsReachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, nm.Config.Network.ReachabilityURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", nm.userAgent())

	resp, err := nm.ProbeClient.Do(req)
	if err != nil {
		nm.Logger.Info("No internet connection detected: %v", err)
		return false
	}
	resp.Body.Close()
	return true
}

// -----------------------------------------------------------------------------

func (nm *AsyncNetworkManager) userAgent() string {
	if nm.Config.Network.UserAgent != "" {
		return nm.Config.Network.UserAgent
	}
	return "Mozilla/5.0"
}
