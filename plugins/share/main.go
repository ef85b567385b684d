package main

import (
	"context"
	"fmt"

	hookrpc "zenstreak/internal/modules/hook/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

var affirmations = []string{
	"One more mindful day. Keep breathing.",
	"Presence practised is presence gained.",
	"Small steps, steady mind.",
	"You showed up for yourself today.",
}

type server struct{}

func (s *server) Describe(_ context.Context, _ *hookrpc.Empty) (*hookrpc.Metadata, error) {
	return &hookrpc.Metadata{
		Name:    "share",
		Version: "1.0.0",
		Events:  []string{"checkin", "milestone"},
	}, nil
}

func (s *server) OnEvent(_ context.Context, in *hookrpc.Event) (*hookrpc.EventResponse, error) {
	switch in.Kind {
	case "milestone":
		return &hookrpc.EventResponse{Message: fmt.Sprintf(
			"I just reached a %d-day meditation streak and earned %q on zenstreak. #meditation #mindfulness",
			in.Milestone, in.MilestoneTitle,
		)}, nil
	case "checkin":
		msg := affirmations[int(in.TotalSessions)%len(affirmations)]
		if in.CurrentStreak > 1 {
			msg = fmt.Sprintf("%s Day %d in a row.", msg, in.CurrentStreak)
		}
		return &hookrpc.EventResponse{Message: msg}, nil
	default:
		return nil, fmt.Errorf("unknown event: %s", in.Kind)
	}
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: hookrpc.HandshakeConfig,
		Plugins:         hookrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
