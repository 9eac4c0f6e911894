package delivery

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// LoadDataset materializes the three input tables from JSONL files. The
// tables are independent, so they are read concurrently; the first error
// aborts the whole load. Records are validated before the dataset is
// handed to the engine, so malformed input fails fast at this boundary.
func LoadDataset(ctx context.Context, deliveriesPath, rankingPath, distancePath string) (*Dataset, error) {
	ds := &Dataset{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := readJSONL[Record](ctx, deliveriesPath)
		if err != nil {
			return fmt.Errorf("deliveries: %w", err)
		}
		ds.Records = records
		return nil
	})
	g.Go(func() error {
		ranking, err := readJSONL[PartnerRankingEntry](ctx, rankingPath)
		if err != nil {
			return fmt.Errorf("partner ranking: %w", err)
		}
		ds.PartnerRanking = ranking
		return nil
	})
	g.Go(func() error {
		distance, err := readJSONL[DistancePerformanceEntry](ctx, distancePath)
		if err != nil {
			return fmt.Errorf("distance performance: %w", err)
		}
		ds.DistancePerformance = distance
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ValidateRecords(ds.Records); err != nil {
		return nil, fmt.Errorf("invalid delivery records: %w", err)
	}

	log.Info().
		Int("records", len(ds.Records)).
		Int("ranking_rows", len(ds.PartnerRanking)).
		Int("distance_rows", len(ds.DistancePerformance)).
		Msg("Dataset loaded")

	return ds, nil
}

// readJSONL reads one JSON document per line. A missing file yields an
// empty table (a freshly-filtered empty window is the common case, not an
// error); an unreadable line is skipped with a warning so a single bad row
// cannot take down the whole report.
func readJSONL[T any](ctx context.Context, path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("Input file not found, treating as empty")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var rows []T
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var row T
		if err := json.Unmarshal(raw, &row); err != nil {
			log.Warn().Err(err).Str("path", path).Int("line", line).Msg("Skipping invalid JSON line")
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return rows, nil
}
