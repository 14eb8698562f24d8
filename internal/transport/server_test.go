package transport

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"taskrt/internal/plugin"
	"taskrt/internal/runtime"
	"taskrt/internal/task"
)

type quiet struct{ plugin.Base }

func (q *quiet) NewInstance() plugin.Plugin { return &quiet{Base: plugin.NewBase(q.Name())} }

func startBuf(t *testing.T) (*Server, *Client) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewServer(lis)
	go func() { _ = srv.Serve() }()
	t.Cleanup(srv.Stop)

	cli, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cli.Close() })
	return srv, cli
}

func TestHealthFollowsModelLifecycle(t *testing.T) {
	srv, cli := startBuf(t)
	ctx := context.Background()

	m := runtime.New(task.Empty(), runtime.WithHealth(srv))
	require.NoError(t, m.Register(&quiet{Base: plugin.NewBase("a")}))

	ok, err := cli.Serving(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Start(ctx))
	ok, err = cli.Serving(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = cli.Serving(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.Stop(ctx))
	ok, err = cli.Serving(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHealthUnknownPlugin(t *testing.T) {
	_, cli := startBuf(t)
	_, err := cli.Serving(context.Background(), "ghost")
	assert.Equal(t, codes.NotFound, status.Code(err))
}
