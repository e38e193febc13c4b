package store

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/rohanjoshi-fynd/maze-game/maze"
)

// Snapshot is the stored form of one played maze. It carries everything a
// replay or inspection tool needs without regenerating from the seed.
type Snapshot struct {
	Width  int                `json:"width"`
	Height int                `json:"height"`
	Seed   int64              `json:"seed"`
	Start  maze.Cell          `json:"start"`
	Exit   maze.Cell          `json:"exit"`
	Cells  [][]maze.CellState `json:"cells"`
}

// EncodeSnapshot serializes a grid with gob and compresses it with zstd.
func EncodeSnapshot(g *maze.Grid) ([]byte, error) {
	snap := Snapshot{
		Width:  g.Width(),
		Height: g.Height(),
		Seed:   g.Seed(),
		Start:  g.Start(),
		Exit:   g.Exit(),
		Cells:  g.Rows(),
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if err := gob.NewEncoder(enc).Encode(&snap); err != nil {
		enc.Close()
		return nil, fmt.Errorf("gob encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot decompresses and decodes a snapshot blob.
func DecodeSnapshot(blob []byte) (*Snapshot, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("empty grid blob")
	}
	dec, err := zstd.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var snap Snapshot
	if err := gob.NewDecoder(dec).Decode(&snap); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}
	return &snap, nil
}
