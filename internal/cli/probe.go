package cli

import (
	"context"
	"net"
	"net/url"
	"time"

	"reviserr/internal/logging"
)

const probeTimeout = 2 * time.Second

var lookupHost = net.DefaultResolver.LookupHost

// probeOffline reports whether the provider host cannot be resolved. It is
// advisory only: any doubt counts as online.
func probeOffline(ctx context.Context, baseURL string) bool {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Hostname() == "" {
		return false
	}
	host := parsed.Hostname()
	if net.ParseIP(host) != nil || host == "localhost" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if _, err := lookupHost(ctx, host); err != nil {
		if ctx.Err() != nil && ctx.Err() != context.DeadlineExceeded {
			return false
		}
		logging.WithContext(ctx).WithError(err).WithField("host", host).Debug("provider host lookup failed")
		return true
	}
	return false
}
