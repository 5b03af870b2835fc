package node

import (
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Node describes the running server process.
type Node struct {
	ID         string
	Hostname   string
	IPAddress  string
	Version    string
	CommitHash string
	StartedAt  time.Time
}

// set at build time with -ldflags
var Version = "development"
var CommitHash = "unknown"

var (
	current     Node
	currentOnce sync.Once
)

func GetNodeInfo() Node {
	currentOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "localhost"
		}
		current = Node{
			ID:         uuid.NewString(),
			Hostname:   hostname,
			IPAddress:  localIPAddress(),
			Version:    Version,
			CommitHash: CommitHash,
			StartedAt:  time.Now().UTC(),
		}
	})
	return current
}

func (n Node) Uptime() time.Duration {
	return time.Since(n.StartedAt).Truncate(time.Second)
}

// LogAttrs are attached to every log line of the process.
func (n Node) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("version", n.Version),
		slog.String("node_id", n.ID),
		slog.String("host", n.Hostname),
	}
}

// localIPAddress picks the first non loopback IPv4 address of the host.
func localIPAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip := ipNet.IP.To4(); ip != nil {
			return ip.String()
		}
	}
	return "127.0.0.1"
}
