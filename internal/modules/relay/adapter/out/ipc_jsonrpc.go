package out

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"time"

	"leadclip/internal/modules/relay/domain"
	relayout "leadclip/internal/modules/relay/port/out"
)

type JSONRPCServer struct{}

type JSONRPCClient struct{}

func NewJSONRPCServer() relayout.IPCServer {
	return &JSONRPCServer{}
}

func NewJSONRPCClient() relayout.Poster {
	return &JSONRPCClient{}
}

type rpcHandler struct {
	h relayout.IPCHandler
}

type deliverReq struct {
	Envelope domain.Envelope
}

type statusResp struct {
	Status relayout.RelayStatus
}

type empty struct{}

func (s *rpcHandler) Deliver(req deliverReq, _ *empty) error {
	return s.h.Deliver(context.Background(), req.Envelope)
}

func (s *rpcHandler) Status(_ empty, resp *statusResp) error {
	status, err := s.h.Status(context.Background())
	if err != nil {
		return err
	}
	resp.Status = status
	return nil
}

func (s *rpcHandler) Stop(_ empty, _ *empty) error {
	return s.h.Stop(context.Background())
}

func (s *JSONRPCServer) Serve(ctx context.Context, socketPath string, handler relayout.IPCHandler) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o755); err != nil {
		return fmt.Errorf("create ipc dir: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale ipc socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen ipc socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("chmod ipc socket: %w", err)
	}
	defer ln.Close()

	rpcSrv := rpc.NewServer()
	if err := rpcSrv.RegisterName("Relay", &rpcHandler{h: handler}); err != nil {
		return fmt.Errorf("register ipc handler: %w", err)
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return err
		}
		go rpcSrv.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}

func (c *JSONRPCClient) Post(ctx context.Context, socketPath string, env domain.Envelope) error {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	return client.Call("Relay.Deliver", deliverReq{Envelope: env}, &empty{})
}

func (c *JSONRPCClient) Status(ctx context.Context, socketPath string) (relayout.RelayStatus, error) {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return relayout.RelayStatus{}, err
	}
	defer client.Close()
	resp := statusResp{}
	if err := client.Call("Relay.Status", empty{}, &resp); err != nil {
		return relayout.RelayStatus{}, err
	}
	return resp.Status, nil
}

func (c *JSONRPCClient) Stop(ctx context.Context, socketPath string) error {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	return client.Call("Relay.Stop", empty{}, &empty{})
}

func dialClient(ctx context.Context, socketPath string) (*rpc.Client, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, err
	}
	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))
	return rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn)), nil
}
