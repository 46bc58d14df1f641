package convert

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"ms2csv/internal/metastock"
	"ms2csv/internal/model"
	"ms2csv/internal/saver"
	"ms2csv/internal/slogx"
)

const heartbeatInterval = 30 * time.Second

// Options carries one run's resolved inputs.
type Options struct {
	Index     *metastock.Index
	Dir       string // directory holding the data files
	OutDir    string
	Saver     saver.RowSaver
	Precision int
	Cutoff    int      // YYYYMMDD, 0 = unfiltered
	Symbols   []string // empty = every record in the index
}

// Run converts the selected symbols one at a time, in index order. The
// index is already fully parsed; data files open only here. A per-symbol
// failure is tallied and reported but never stops the run. Closing
// shutdown stops cleanly at the next symbol boundary.
func Run(opts Options, shutdown <-chan struct{}) (successCount, failedCount int) {
	records := selectRecords(opts.Index.Records, opts.Symbols)
	if len(records) == 0 {
		slog.Info("no symbols to convert, skip")
		return 0, 0
	}
	skipped := len(opts.Index.Records) - len(records)
	if skipped > 0 {
		slog.Info("symbols selected", "selected", len(records), "skipped", skipped)
	} else {
		slog.Info("symbols to convert", "symbols", len(records))
	}

	logs := make(chan string, 2048)
	logger := slogx.NewChanLogger(logs)
	errs := make(chan errorEntry, 64)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		runLogWriter(logs)
	}()
	var errWg sync.WaitGroup
	errWg.Add(1)
	go func() {
		defer errWg.Done()
		runErrorHandler(errs, logger)
	}()

	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var success, failed int
	rowsPerSymbol := make(map[string]int)
	var successList []string
	var failedList []failedEntry

	// The heartbeat and error handler feed the log channel, so both must
	// drain before it closes.
	var hbWg sync.WaitGroup
	defer func() {
		cancel()
		hbWg.Wait()
		close(errs)
		errWg.Wait()
		close(logs)
		logWg.Wait()
	}()
	defer func() {
		if len(successList) > 0 || len(failedList) > 0 {
			if err := writeRunReport(opts.OutDir, successList, failedList); err != nil {
				slog.Warn("could not write run report", "error", err)
			} else {
				slog.Info("run report saved", "success", len(successList), "failed", len(failedList))
			}
		}
	}()

	hbWg.Add(1)
	go func() {
		defer hbWg.Done()
		runHeartbeat(ctx, heartbeatInterval, len(records), &mu, &success, &failed, rowsPerSymbol, logger)
	}()

loop:
	for _, rec := range records {
		select {
		case <-shutdown:
			logger.Warn("shutdown requested, stopping at symbol boundary", "done", success+failed, "total", len(records))
			break loop
		default:
		}

		rows, err := convertOne(opts, rec)
		mu.Lock()
		if err != nil {
			failed++
			failedList = append(failedList, failedEntry{Symbol: rec.Symbol, FileNum: rec.FileNum, Reason: err.Error()})
			mu.Unlock()
			logger.Error("convert fail", "symbol", rec.Symbol, "file_num", rec.FileNum, "reason", err.Error())
			select {
			case errs <- errorEntry{Symbol: rec.Symbol, Err: err}:
			default:
			}
			continue
		}
		success++
		successList = appendSuccess(successList, rec.Symbol)
		rowsPerSymbol[rec.Symbol] += rows
		mu.Unlock()
		logger.Info("convert ok", "symbol", rec.Symbol, "file_num", rec.FileNum, "rows", rows)
	}

	mu.Lock()
	var total int
	for _, n := range rowsPerSymbol {
		total += n
	}
	logger.Info("summary", "total_rows", total, "success", success, "failed", failed)
	if len(rowsPerSymbol) > 0 {
		symbols := make([]string, 0, len(rowsPerSymbol))
		for s := range rowsPerSymbol {
			symbols = append(symbols, s)
		}
		sort.Strings(symbols)
		for _, s := range symbols {
			logger.Info("summary symbol", "symbol", s, "rows", rowsPerSymbol[s])
		}
	}
	if len(failedList) > 0 {
		logger.Info("summary failed", "count", len(failedList), "reasons", joinFailedReasons(failedList))
	}
	mu.Unlock()

	return success, failed
}

// convertOne resolves one symbol's column layout and data file and
// streams it into a fresh output file.
func convertOne(opts Options, rec *metastock.SymbolRecord) (int, error) {
	dop, err := metastock.OpenColumnFile(opts.Dir, rec.FileNum)
	if err != nil {
		return 0, fmt.Errorf("column descriptions: %w", err)
	}
	schema, err := metastock.LoadSchema(dop, rec, opts.Precision)
	dop.Close()
	if err != nil {
		return 0, fmt.Errorf("column descriptions: %w", err)
	}

	data, err := metastock.OpenDataFile(opts.Dir, rec.FileNum)
	if err != nil {
		return 0, fmt.Errorf("data file: %w", err)
	}
	defer data.Close()

	series := model.Series{Symbol: rec.Symbol, Name: rec.Name, Columns: schema.Columns()}
	outPath := filepath.Join(opts.OutDir, rec.Symbol+"."+opts.Saver.Extension())
	w, err := opts.Saver.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	rows, err := metastock.ConvertFile(data, schema, series, opts.Cutoff, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return rows, err
}

// selectRecords keeps index order; the symbol filter is case-insensitive.
func selectRecords(records []*metastock.SymbolRecord, symbols []string) []*metastock.SymbolRecord {
	if len(symbols) == 0 {
		return records
	}
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			want[s] = true
		}
	}
	var out []*metastock.SymbolRecord
	for _, r := range records {
		if want[strings.ToUpper(r.Symbol)] {
			out = append(out, r)
		}
	}
	return out
}
