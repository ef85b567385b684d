// Package rpc is the wire contract between zenstreak and hook processes. It
// runs over go-plugin's gRPC transport with a JSON codec, so no generated
// protobuf code is needed on either side.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey    = "zenstreak"
	serviceName     = "zenstreak.hook.v1.Hook"
	jsonCodecName   = "json"
	methodDescribe  = "/" + serviceName + "/Describe"
	methodOnEvent   = "/" + serviceName + "/OnEvent"
	ProtocolVersion = 1
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   "ZENSTREAK_HOOK",
	MagicCookieValue: "zenstreak",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Events  []string `json:"events"`
}

type Event struct {
	ID             string  `json:"id"`
	Kind           string  `json:"kind"`
	Date           string  `json:"date"`
	Type           string  `json:"type"`
	Duration       float64 `json:"duration"`
	CurrentStreak  int32   `json:"current_streak"`
	LongestStreak  int32   `json:"longest_streak"`
	TotalSessions  int32   `json:"total_sessions"`
	Milestone      int32   `json:"milestone"`
	MilestoneTitle string  `json:"milestone_title"`
}

type EventResponse struct {
	Message string `json:"message"`
}

type HookServer interface {
	Describe(ctx context.Context, in *Empty) (*Metadata, error)
	OnEvent(ctx context.Context, in *Event) (*EventResponse, error)
}

type HookClient interface {
	Describe(ctx context.Context) (*Metadata, error)
	OnEvent(ctx context.Context, in *Event) (*EventResponse, error)
}

type hookClient struct {
	conn *grpc.ClientConn
}

func NewHookClient(conn *grpc.ClientConn) HookClient {
	return &hookClient{conn: conn}
}

func (c *hookClient) Describe(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodDescribe, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *hookClient) OnEvent(ctx context.Context, in *Event) (*EventResponse, error) {
	out := &EventResponse{}
	if err := c.conn.Invoke(ctx, methodOnEvent, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed handler to grpc.MethodDesc, running interceptors the
// same way generated code does.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type %T", req)
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterHookServer(server grpc.ServiceRegistrar, impl HookServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*HookServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Describe", Handler: unary(methodDescribe, impl.Describe)},
			{MethodName: "OnEvent", Handler: unary(methodOnEvent, impl.OnEvent)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "zenstreak/hook/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl HookServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterHookServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewHookClient(conn), nil
}

func PluginMap(impl HookServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
