package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// TMDBPingTimeout bounds the reachability check made by the health endpoint
const TMDBPingTimeout = 1500 * time.Millisecond

// ServiceAddress returns the host:port dialed for serviceURL, filling the scheme's default port
func ServiceAddress(serviceURL string) (string, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("invalid URL: %q has no host", serviceURL)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(host, port), nil
}

// PingService opens and closes a TCP connection to the service behind serviceURL
func PingService(serviceURL string, timeout time.Duration) error {
	address, err := ServiceAddress(serviceURL)
	if err != nil {
		return err
	}

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

// PingTMDB checks if the TMDB API is reachable
func PingTMDB(baseURL string) error {
	return PingService(baseURL, TMDBPingTimeout)
}
