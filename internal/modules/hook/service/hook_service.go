package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"zenstreak/internal/modules/hook/domain"
	"zenstreak/internal/modules/hook/dto"
	hookout "zenstreak/internal/modules/hook/port/out"
	apperrors "zenstreak/internal/platform/errors"
)

type HookService struct {
	store hookout.ManifestStore
	host  hookout.Host
	log   *zap.Logger
}

func NewHookService(store hookout.ManifestStore, host hookout.Host, log *zap.Logger) *HookService {
	if log == nil {
		log = zap.NewNop()
	}
	return &HookService{store: store, host: host, log: log}
}

func (s *HookService) List(ctx context.Context) ([]dto.HookInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HookInfo, 0, len(manifests))
	for _, m := range manifests {
		events := make([]string, 0, len(m.Events))
		for _, e := range m.Events {
			events = append(events, string(e))
		}
		out = append(out, dto.HookInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Events: events})
	}
	return out, nil
}

func (s *HookService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		if !result.ChecksumValid {
			result.Error = "checksum mismatch"
			results = append(results, result)
			continue
		}
		if m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// Dispatch delivers event to every enabled hook subscribed to its kind, in
// manifest order. A failing hook is recorded in its outcome and does not stop
// the others.
func (s *HookService) Dispatch(ctx context.Context, event domain.Event) ([]domain.Outcome, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	var outcomes []domain.Outcome
	for _, m := range manifests {
		if !m.Enabled || !m.Subscribes(event.Kind) {
			continue
		}
		outcome := domain.Outcome{Name: m.Name}
		reply, err := s.deliver(ctx, m, event)
		if err != nil {
			outcome.Err = fmt.Errorf("%w: %v", apperrors.ErrHookFailed, err)
			s.log.Warn("hook failed",
				zap.String("hook", m.Name),
				zap.String("event", string(event.Kind)),
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		} else {
			outcome.Message = reply.Message
			s.log.Debug("hook delivered", zap.String("hook", m.Name), zap.String("event", string(event.Kind)))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *HookService) deliver(ctx context.Context, m domain.Manifest, event domain.Event) (domain.Reply, error) {
	if s.host == nil {
		return domain.Reply{}, fmt.Errorf("hook host is not configured")
	}
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return domain.Reply{}, err
	}
	return s.host.Deliver(ctx, m, event)
}

func (s *HookService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, m := range manifests {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[m.Name]; ok {
			return nil, fmt.Errorf("duplicate hook name: %s", m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read hook binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
