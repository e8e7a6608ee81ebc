package memobench

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"
)

const (
	metadataRunID  = "run_id"
	metadataTrials = "trials"
)

func resultSchema(r Result) *arrow.Schema {
	md := arrow.NewMetadata(
		[]string{metadataRunID, metadataTrials},
		[]string{r.RunID.String(), strconv.Itoa(r.Trials)},
	)
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: "n", Type: arrow.PrimitiveTypes.Int64},
			{Name: "lru_seconds", Type: arrow.PrimitiveTypes.Float64},
			{Name: "splay_seconds", Type: arrow.PrimitiveTypes.Float64},
		},
		&md,
	)
}

// WriteResultsArrow writes the measurements as one Arrow IPC record batch.
// The run ID and trial count travel in the schema metadata.
func WriteResultsArrow(w io.Writer, r Result) error {
	schema := resultSchema(r)

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	nBuilder := builder.Field(0).(*array.Int64Builder)
	lruBuilder := builder.Field(1).(*array.Float64Builder)
	splayBuilder := builder.Field(2).(*array.Float64Builder)

	for _, m := range r.Measurements {
		nBuilder.Append(int64(m.N))
		lruBuilder.Append(m.LRU.Seconds())
		splayBuilder.Append(m.Splay.Seconds())
	}

	record := builder.NewRecord()
	defer record.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(schema))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}

// ReadResultsArrow reads results written by WriteResultsArrow.
func ReadResultsArrow(rd io.Reader) (Result, error) {
	var result Result

	reader, err := ipc.NewReader(rd)
	if err != nil {
		return result, fmt.Errorf("failed to create reader: %w", err)
	}
	defer reader.Release()

	md := reader.Schema().Metadata()
	if i := md.FindKey(metadataRunID); i >= 0 {
		if result.RunID, err = uuid.Parse(md.Values()[i]); err != nil {
			return result, fmt.Errorf("parse run id: %w", err)
		}
	}
	if i := md.FindKey(metadataTrials); i >= 0 {
		if result.Trials, err = strconv.Atoi(md.Values()[i]); err != nil {
			return result, fmt.Errorf("parse trials: %w", err)
		}
	}

	for reader.Next() {
		record := reader.Record()
		if record.NumCols() != 3 {
			return result, fmt.Errorf("expected 3 columns, got %d", record.NumCols())
		}

		ns, ok := record.Column(0).(*array.Int64)
		if !ok {
			return result, fmt.Errorf("column n has type %s", record.Column(0).DataType())
		}
		lruSeconds, ok := record.Column(1).(*array.Float64)
		if !ok {
			return result, fmt.Errorf("column lru_seconds has type %s", record.Column(1).DataType())
		}
		splaySeconds, ok := record.Column(2).(*array.Float64)
		if !ok {
			return result, fmt.Errorf("column splay_seconds has type %s", record.Column(2).DataType())
		}

		for i := 0; i < int(record.NumRows()); i++ {
			result.Measurements = append(result.Measurements, Measurement{
				N:     int(ns.Value(i)),
				LRU:   secondsToDuration(lruSeconds.Value(i)),
				Splay: secondsToDuration(splaySeconds.Value(i)),
			})
		}
	}
	if err := reader.Err(); err != nil {
		return result, err
	}

	return result, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
