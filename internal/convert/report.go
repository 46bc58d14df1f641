package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type successReport struct {
	RunID   string   `json:"run_id"`
	Symbols []string `json:"symbols"`
}

type failedEntry struct {
	Symbol  string `json:"symbol"`
	FileNum int    `json:"file_num"`
	Reason  string `json:"reason"`
}

type failedReport struct {
	RunID   string        `json:"run_id"`
	Symbols []failedEntry `json:"symbols"`
}

// writeRunReport drops the outcome of the run next to the converted
// files. Both reports share one run id.
func writeRunReport(outDir string, successList []string, failedList []failedEntry) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	runID := uuid.NewString()
	if len(successList) > 0 {
		p := filepath.Join(outDir, ".lastrun.success.json")
		data, err := json.MarshalIndent(successReport{RunID: runID, Symbols: successList}, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "symbols", len(successList))
	}
	if len(failedList) > 0 {
		p := filepath.Join(outDir, ".lastrun.failed.json")
		data, err := json.MarshalIndent(failedReport{RunID: runID, Symbols: failedList}, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}

func appendSuccess(list []string, symbol string) []string {
	for _, s := range list {
		if s == symbol {
			return list
		}
	}
	return append(list, symbol)
}

func joinFailedReasons(failedList []failedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Symbol)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failedList) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failedList)-5))
			break
		}
	}
	return b.String()
}
