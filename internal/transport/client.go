package transport

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Client asks a running engine about plugin health.
type Client struct {
	conn *grpc.ClientConn
	hc   healthpb.HealthClient
}

func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	cc, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: cc, hc: healthpb.NewHealthClient(cc)}, nil
}

func DialPort(port int) (*Client, error) {
	return Dial(fmt.Sprintf("localhost:%d", port))
}

// Serving reports whether plugin (or the whole model for "") is serving.
func (c *Client) Serving(ctx context.Context, plugin string) (bool, error) {
	resp, err := c.hc.Check(ctx, &healthpb.HealthCheckRequest{Service: plugin})
	if err != nil {
		return false, err
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
