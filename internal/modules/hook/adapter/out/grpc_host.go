package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	hookrpc "zenstreak/internal/modules/hook/adapter/out/rpc"
	"zenstreak/internal/modules/hook/domain"
	hookout "zenstreak/internal/modules/hook/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost starts one hook process per call and kills it afterwards.
type GRPCHost struct {
	logger hclog.Logger
}

// NewGRPCHost uses logger for go-plugin's own diagnostics. A nil logger
// discards them.
func NewGRPCHost(logger hclog.Logger) hookout.Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GRPCHost{logger: logger}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.Describe(ctx, manifest)
	return err
}

func (h *GRPCHost) Describe(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.Describe(callCtx)
	if err != nil {
		return domain.Metadata{}, wrapCallError(callCtx, manifest, "describe", err)
	}
	events := make([]domain.EventKind, 0, len(meta.Events))
	for _, e := range meta.Events {
		events = append(events, domain.EventKind(e))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Events: events}, nil
}

func (h *GRPCHost) Deliver(ctx context.Context, manifest domain.Manifest, event domain.Event) (domain.Reply, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Reply{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	resp, err := client.OnEvent(callCtx, &hookrpc.Event{
		ID:             event.ID,
		Kind:           string(event.Kind),
		Date:           event.Date,
		Type:           event.Type,
		Duration:       event.Duration,
		CurrentStreak:  int32(event.CurrentStreak),
		LongestStreak:  int32(event.LongestStreak),
		TotalSessions:  int32(event.TotalSessions),
		Milestone:      int32(event.Milestone),
		MilestoneTitle: event.MilestoneTitle,
	})
	if err != nil {
		return domain.Reply{}, wrapCallError(callCtx, manifest, "deliver "+string(event.Kind), err)
	}
	return domain.Reply{Message: resp.Message}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (hookrpc.HookClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  hookrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          hookrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start hook %s: %w", manifest.Name, err)
	}
	raw, err := rpcClient.Dispense(hookrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense hook %s: %w", manifest.Name, err)
	}
	typed, ok := raw.(hookrpc.HookClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("hook %s: rpc client type mismatch", manifest.Name)
	}
	return typed, closeFn, nil
}

func wrapCallError(callCtx context.Context, manifest domain.Manifest, op string, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s", domain.ErrHookTimeout, manifest.Name, op)
	}
	return fmt.Errorf("hook %s %s: %w", manifest.Name, op, err)
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
