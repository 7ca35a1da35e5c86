// Package netutil answers whether the network is reachable before sync
// attempts are made.
package netutil

import (
	"net"
	"time"
)

const (
	probeAddr    = "8.8.8.8:53"
	probeTimeout = 1 * time.Second
)

// Probe attempts a TCP connection to addr and reports the observed
// latency in milliseconds. The latency is -1 when the address did not
// accept a connection within the timeout.
func Probe(addr string, timeout time.Duration) (float64, bool) {
	start := time.Now()

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return -1, false
	}

	defer conn.Close()

	return float64(time.Since(start)) / float64(time.Millisecond), true
}

// CheckConnectivity probes a well-known public DNS server to decide
// whether the machine is online.
func CheckConnectivity() (float64, bool) {
	return Probe(probeAddr, probeTimeout)
}
