package qtable

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

// RecordSize is the width of one persisted entry: nine int32 cells followed
// by one float32 value, all little-endian.
const RecordSize = len(entity.StateKey{})*4 + 4

// WriteTo writes every occupied slot as a fixed-width record. There is no
// header and no count prefix.
func (that *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	var (
		record  [RecordSize]byte
		written int64
	)

	for _, entry := range that.entries {
		encodeRecord(record[:], entry)

		n, err := bw.Write(record[:])
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush records: %w", err)
	}

	return written, nil
}

// ReadFrom replaces the table contents with the records read from r. Reading
// stops at end of input or at a trailing partial record; neither is an error.
// More distinct keys than capacity fail with apperror.ErrTableFull. An
// all-zero record is an ordinary entry for the empty board, except for a
// trailing run of two or more, which is padding left by older tables. On
// error the table is left unchanged.
func (that *Table) ReadFrom(r io.Reader) (int64, error) {
	loaded := New(that.capacity)
	br := bufio.NewReader(r)

	var (
		record [RecordSize]byte
		read   int64
		zeros  int
	)

	for {
		n, err := io.ReadFull(br, record[:])
		read += int64(n)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return read, fmt.Errorf("failed to read record: %w", err)
		}

		index := read/int64(RecordSize) - 1

		entry, err := decodeRecord(record[:])
		if err != nil {
			return read, fmt.Errorf("record %d: %w", index, err)
		}

		if entry == (Entry{}) {
			zeros++
			continue
		}

		if zeros > 0 {
			if err = loaded.Ensure(entity.StateKey{}); err != nil {
				return read, fmt.Errorf("record %d: %w", index-int64(zeros), err)
			}
			zeros = 0
		}

		if err = loaded.Ensure(entry.Key); err != nil {
			return read, fmt.Errorf("record %d: %w", index, err)
		}
		loaded.entries[loaded.index[entry.Key]].Value = entry.Value
	}

	if zeros == 1 {
		if err := loaded.Ensure(entity.StateKey{}); err != nil {
			return read, fmt.Errorf("last record: %w", err)
		}
	}

	that.replace(loaded)

	return read, nil
}

// Save writes the table to path, truncating any existing file.
func (that *Table) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for saving q-table: %w", path, err)
	}

	if _, err = that.WriteTo(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to save q-table to %s: %w", path, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}

// Load replaces the table contents with the records stored at path.
func (that *Table) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for loading q-table: %w", path, err)
	}
	defer file.Close()

	if _, err = that.ReadFrom(file); err != nil {
		return fmt.Errorf("failed to load q-table from %s: %w", path, err)
	}

	return nil
}

func encodeRecord(buf []byte, entry Entry) {
	for i, mark := range entry.Key {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(mark)))
	}
	binary.LittleEndian.PutUint32(buf[RecordSize-4:], math.Float32bits(entry.Value))
}

func decodeRecord(buf []byte) (Entry, error) {
	var entry Entry

	for i := range entry.Key {
		mark := entity.Mark(int32(binary.LittleEndian.Uint32(buf[i*4:])))
		if !mark.Valid() {
			return Entry{}, fmt.Errorf("%w: cell %d holds %d", apperror.ErrInvalidRecord, i, mark)
		}
		entry.Key[i] = mark
	}
	entry.Value = math.Float32frombits(binary.LittleEndian.Uint32(buf[RecordSize-4:]))

	return entry, nil
}
