package netutil

import (
	"net"
	"testing"
	"time"
)

func TestProbeReachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	defer ln.Close()

	go func() {
		conn, acceptErr := ln.Accept()
		if acceptErr == nil {
			conn.Close()
		}
	}()

	latency, ok := Probe(ln.Addr().String(), time.Second)
	if !ok {
		t.Fatal("expected the local listener to be reachable")
	}

	if latency < 0 {
		t.Errorf("latency = %f, want >= 0", latency)
	}
}

func TestProbeUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	addr := ln.Addr().String()

	// Closing the listener frees the port so the connection is refused.
	ln.Close()

	latency, ok := Probe(addr, 100*time.Millisecond)
	if ok {
		t.Fatal("expected the closed listener to be unreachable")
	}

	if latency != -1 {
		t.Errorf("latency = %f, want -1", latency)
	}
}
