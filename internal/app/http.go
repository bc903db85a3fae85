package app

import (
    "net"
    "net/http"
    "time"
)

// NewProviderHTTPClient returns an HTTP client for outbound provider calls.
// No overall client timeout is set: the per-request deadline is enforced by
// the request handler, and the outbound call is deliberately left running
// when that deadline fires.
func NewProviderHTTPClient() *http.Client {
    transport := &http.Transport{
        Proxy: http.ProxyFromEnvironment,
        DialContext: (&net.Dialer{
            Timeout:   10 * time.Second,
            KeepAlive: 30 * time.Second,
        }).DialContext,
        ForceAttemptHTTP2:     true,
        MaxIdleConns:          32,
        MaxIdleConnsPerHost:   8,
        IdleConnTimeout:       90 * time.Second,
        TLSHandshakeTimeout:   10 * time.Second,
        ExpectContinueTimeout: 1 * time.Second,
    }
    return &http.Client{Transport: transport}
}
