package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/model"
)

// saveRunLog writes the cycle log as run_<unix>.json in the output dir
// and returns its path.
func (p *Pipeline) saveRunLog(runLog *model.RunLog) (string, error) {
	if err := os.MkdirAll(p.cfg.Output.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(p.cfg.Output.Dir, fmt.Sprintf("run_%d.json", time.Now().Unix()))
	raw, err := json.MarshalIndent(runLog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal run log: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write run log: %w", err)
	}
	return path, nil
}

func (p *Pipeline) sessionPath() string {
	return filepath.Join(p.cfg.Output.Dir, "session_state.json")
}

// updateSessionState merges the latest run into session_state.json,
// starting fresh if the existing file is missing or unreadable.
func (p *Pipeline) updateSessionState(lastRun, lastTimestamp string, processed int) error {
	state := &model.SessionState{}
	if raw, err := os.ReadFile(p.sessionPath()); err == nil {
		// Corrupt state is replaced, not fatal.
		_ = json.Unmarshal(raw, state)
	}

	state.LastRun = lastRun
	state.LastTimestamp = lastTimestamp
	state.LastProcessed = processed
	state.Modified = time.Now().UTC().Format(time.RFC3339)

	return p.saveSession(state)
}

func (p *Pipeline) saveSession(state *model.SessionState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := os.WriteFile(p.sessionPath(), raw, 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
